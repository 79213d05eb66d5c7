package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	faqx "github.com/assessor-ai/assessor/agent/agents/faq"
	orchestratorx "github.com/assessor-ai/assessor/agent/agents/orchestrator"
	specialistx "github.com/assessor-ai/assessor/agent/agents/specialist"
	llmx "github.com/assessor-ai/assessor/agent/llm"
	statex "github.com/assessor-ai/assessor/agent/state"
	transactionx "github.com/assessor-ai/assessor/agent/transaction"
	configx "github.com/assessor-ai/assessor/pkg/config"
	_ "github.com/assessor-ai/assessor/pkg/logger/autoload"
	openrouterx "github.com/assessor-ai/assessor/pkg/openrouter"
)

type AppConfig struct {
	SessionID    string `envconfig:"SESSION_ID" split_words:"true" default:"local"`
	FAQPath      string `envconfig:"FAQ_PATH" split_words:"true" default:"faq.md"`
	SessionStore string `envconfig:"SESSION_STORE" split_words:"true" default:"memory"`
}

// Turn-ending tokens, matched case-insensitively against the whole line.
var exitTokens = map[string]struct{}{
	"sair":       {},
	"end":        {},
	"fim":        {},
	"tchau":      {},
	"bye":        {},
	"tchautchau": {},
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	openRouterCfg := configx.MustNew[openrouterx.Config]("OPENROUTER")
	if openrouterx.NewClient(*openRouterCfg) == nil {
		log.Fatal().Msg("openrouter api key is missing")
	}
	llmCfg := configx.MustNew[llmx.Config]("LLM")

	store, err := newSessionStore(*appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init session store")
	}

	txCfg := configx.MustNew[transactionx.Config]("DATABASE")
	txStore, err := transactionx.NewPostgresStore(*txCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init transaction store")
	}
	defer txStore.Close()

	retriever, err := faqx.NewFileRetriever(appCfg.FAQPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", appCfg.FAQPath).Msg("load faq document")
	}

	registry, err := specialistx.NewRegistry(ctx, *openRouterCfg, *llmCfg, txStore, retriever)
	if err != nil {
		log.Fatal().Err(err).Msg("init agent registry")
	}

	orch, err := orchestratorx.New(store, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("init orchestrator")
	}

	runLoop(ctx, orch, appCfg.SessionID)
}

func newSessionStore(cfg AppConfig) (statex.Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.SessionStore)) {
	case "", "memory":
		return statex.NewMemoryStore(), nil
	case "upstash":
		redisCfg := configx.MustNew[statex.UpstashRedisConfig]("UPSTASH_REDIS")
		return statex.NewUpstashRedisStore(*redisCfg)
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.SessionStore)
	}
}

// runLoop reads one utterance per line until an exit token or EOF. A failed
// turn prints an error line and the loop keeps going; no single turn takes
// the process down.
func runLoop(ctx context.Context, orch *orchestratorx.Orchestrator, sessionID string) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	for {
		fmt.Print("> | ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				log.Error().Err(err).Msg("read input")
			}
			return
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if _, done := exitTokens[strings.ToLower(text)]; done {
			fmt.Println("Até logo!")
			return
		}

		reply, err := orch.HandleTurn(ctx, sessionID, text)
		if err != nil {
			log.Error().Err(err).Str("session", sessionID).Msg("turn failed")
			fmt.Println("Desculpe, algo deu errado ao processar sua mensagem. Tente novamente.")
			continue
		}
		fmt.Println(reply)
	}
}
