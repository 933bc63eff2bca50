package advice

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildUserPromptAllFields(t *testing.T) {
	days := 7
	req := Request{
		Crop:                   "pszenica ozima",
		Status:                 "septorioza paskowana liści",
		BBCH:                   strPtr("BBCH 29-32"),
		SeasonContext:          strPtr("początek kwietnia"),
		TimeSinceLastSprayDays: &days,
		SituationDescription:   strPtr("wilgotno, po deszczach"),
	}

	want := "DANE WEJŚCIOWE Z APLIKACJI\n\n" +
		"Uprawa: pszenica ozima\n" +
		"Stan zdrowotny: septorioza paskowana liści\n" +
		"Faza BBCH: BBCH 29-32\n" +
		"Kontekst sezonu: początek kwietnia\n" +
		"Czas od ostatniego oprysku (dni): 7\n" +
		"Opis sytuacji: wilgotno, po deszczach\n" +
		"\nPrzygotuj rekomendację zgodnie z instrukcją systemową\n" +
		"i zwróć WYŁĄCZNIE poprawny JSON w ustalonym formacie.\n"
	require.Equal(t, want, buildUserPrompt(req))
}

func TestBuildUserPromptSentinels(t *testing.T) {
	zero := 0
	prompt := buildUserPrompt(Request{
		Crop:                   "rzepak ozimy",
		Status:                 "zdrowe",
		BBCH:                   strPtr("   "),
		TimeSinceLastSprayDays: &zero,
	})

	require.Contains(t, prompt, "Faza BBCH: nie podano\n")
	require.Contains(t, prompt, "Kontekst sezonu: nie podano\n")
	require.Contains(t, prompt, "Czas od ostatniego oprysku (dni): 0\n")
	require.Contains(t, prompt, "Opis sytuacji: nie podano\n")
}

func TestDefaultSystemPromptEmbedded(t *testing.T) {
	require.Contains(t, DefaultSystemPrompt, "ekspertem ochrony roślin")
	require.Contains(t, DefaultSystemPrompt, "store_talk_hint")
}

func TestRequestValidate(t *testing.T) {
	negative := -1
	tests := []struct {
		name    string
		req     Request
		wantErr string
	}{
		{name: "valid", req: Request{Crop: "ziemniak", Status: "zaraza ziemniaka"}},
		{name: "missing crop", req: Request{Status: "zdrowe"}, wantErr: "crop is required"},
		{name: "blank status", req: Request{Crop: "ziemniak", Status: "  "}, wantErr: "status is required"},
		{
			name:    "negative days",
			req:     Request{Crop: "ziemniak", Status: "zdrowe", TimeSinceLastSprayDays: &negative},
			wantErr: "time_since_last_spray_days must be a non-negative integer",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.req.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func strPtr(v string) *string {
	return &v
}
