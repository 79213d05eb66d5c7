// Package handoff implements the plain-text routing protocol exchanged
// between the router and the specialists:
//
//	ROUTE=<financeiro|agenda|faq>
//	PERGUNTA_ORIGINAL=<user utterance, verbatim>
//	PERSONA=<persona directive block>
//	CLARIFY=<minimal question, or empty>
//
// Decode is the single boundary where untrusted router text becomes a typed
// value; nothing downstream ever inspects raw model output again.
package handoff

import (
	"fmt"
	"strings"

	contractx "github.com/assessor-ai/assessor/agent/contract"
)

const (
	routeMarker = "ROUTE="

	keyRoute    = "ROUTE"
	keyQuestion = "PERGUNTA_ORIGINAL"
	keyPersona  = "PERSONA"
	keyClarify  = "CLARIFY"
)

var protocolKeys = []string{keyRoute, keyQuestion, keyPersona, keyClarify}

// Decode classifies raw router output. Text without the ROUTE= marker is a
// plain reply, returned verbatim. Text with the marker must parse into a
// valid handoff; a malformed handoff is a contract violation, never a silent
// plain reply.
func Decode(raw string) (contractx.RouterOutput, error) {
	if !strings.Contains(raw, routeMarker) {
		return contractx.RouterOutput{Reply: raw}, nil
	}

	fields := parseFields(raw)

	route, err := contractx.ParseRoute(fields[keyRoute])
	if err != nil {
		return contractx.RouterOutput{}, fmt.Errorf("%w: %v", contractx.ErrContractViolation, err)
	}

	h := &contractx.Handoff{
		Route:            route,
		OriginalQuestion: strings.TrimSpace(fields[keyQuestion]),
		Persona:          strings.TrimSpace(fields[keyPersona]),
		Clarify:          strings.TrimSpace(fields[keyClarify]),
	}
	return contractx.RouterOutput{Handoff: h}, nil
}

// Encode re-serializes a handoff into the exact wire form specialists
// receive as their task input. Encode is the inverse of Decode over the four
// protocol fields.
func Encode(h contractx.Handoff) string {
	var b strings.Builder
	b.WriteString(keyRoute)
	b.WriteByte('=')
	b.WriteString(string(h.Route))
	b.WriteByte('\n')
	b.WriteString(keyQuestion)
	b.WriteByte('=')
	b.WriteString(h.OriginalQuestion)
	b.WriteByte('\n')
	b.WriteString(keyPersona)
	b.WriteByte('=')
	b.WriteString(h.Persona)
	b.WriteByte('\n')
	b.WriteString(keyClarify)
	b.WriteByte('=')
	b.WriteString(h.Clarify)
	return b.String()
}

// parseFields walks the protocol lines. A line that does not open a known
// KEY= continues the previous field, so PERSONA blocks may span lines. Text
// before the first key is ignored.
func parseFields(raw string) map[string]string {
	fields := make(map[string]string, len(protocolKeys))
	current := ""

	for _, line := range strings.Split(raw, "\n") {
		if key, value, ok := splitProtocolLine(line); ok {
			fields[key] = value
			current = key
			continue
		}
		if current != "" {
			fields[current] += "\n" + line
		}
	}
	return fields
}

func splitProtocolLine(line string) (key, value string, ok bool) {
	trimmed := strings.TrimSpace(line)
	for _, k := range protocolKeys {
		if strings.HasPrefix(trimmed, k+"=") {
			return k, strings.TrimPrefix(trimmed, k+"="), true
		}
	}
	return "", "", false
}
