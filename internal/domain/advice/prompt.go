package advice

import (
	"strconv"
	"strings"
)

// notProvided stands in for optional fields the caller left out.
const notProvided = "nie podano"

func buildUserPrompt(req Request) string {
	var b strings.Builder
	b.WriteString("DANE WEJŚCIOWE Z APLIKACJI\n\n")
	writeField(&b, "Uprawa", strings.TrimSpace(req.Crop))
	writeField(&b, "Stan zdrowotny", strings.TrimSpace(req.Status))
	writeField(&b, "Faza BBCH", optionalText(req.BBCH))
	writeField(&b, "Kontekst sezonu", optionalText(req.SeasonContext))
	writeField(&b, "Czas od ostatniego oprysku (dni)", optionalDays(req.TimeSinceLastSprayDays))
	writeField(&b, "Opis sytuacji", optionalText(req.SituationDescription))
	b.WriteString("\nPrzygotuj rekomendację zgodnie z instrukcją systemową\n")
	b.WriteString("i zwróć WYŁĄCZNIE poprawny JSON w ustalonym formacie.\n")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}

func optionalText(v *string) string {
	if v == nil {
		return notProvided
	}
	if trimmed := strings.TrimSpace(*v); trimmed != "" {
		return trimmed
	}
	return notProvided
}

func optionalDays(v *int) string {
	if v == nil {
		return notProvided
	}
	return strconv.Itoa(*v)
}

func (s *service) systemPrompt() string {
	if prompt := strings.TrimSpace(s.cfg.SystemPrompt); prompt != "" {
		return prompt
	}
	return strings.TrimSpace(DefaultSystemPrompt)
}
