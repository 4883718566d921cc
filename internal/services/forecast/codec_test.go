package forecast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FinCast/internal/domain/models"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	e := NewEngine()
	train := series(80, func(i int) float64 { return 30 + float64(i%13) })
	m, err := e.Fit(train, models.DefaultModelConfig())
	require.NoError(t, err)

	blob, err := e.Save(m)
	require.NoError(t, err)
	loaded, err := e.Load(blob)
	require.NoError(t, err)
	assert.Equal(t, train.Fingerprint(models.DefaultModelConfig()), loaded.Fingerprint())

	want, err := e.Predict(m, 21)
	require.NoError(t, err)
	got, err := e.Predict(loaded, 21)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	again, err := e.Save(loaded)
	require.NoError(t, err)
	assert.Equal(t, blob, again)
}

func TestLoadRejectsBadBlobs(t *testing.T) {
	e := NewEngine()
	m, err := e.Fit(series(20, func(i int) float64 { return float64(i + 1) }), models.DefaultModelConfig())
	require.NoError(t, err)
	blob, err := e.Save(m)
	require.NoError(t, err)

	tamper := func(fn func(map[string]any)) []byte {
		var raw map[string]any
		require.NoError(t, json.Unmarshal(blob, &raw))
		fn(raw)
		out, err := json.Marshal(raw)
		require.NoError(t, err)
		return out
	}

	cases := map[string][]byte{
		"garbage":       []byte("not json"),
		"wrong version": tamper(func(r map[string]any) { r["version"] = 99 }),
		"short beta":    tamper(func(r map[string]any) { r["beta"] = []float64{1} }),
		"no history":    tamper(func(r map[string]any) { r["history"] = []string{} }),
	}
	for name, b := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.Load(b)
			assert.ErrorIs(t, err, models.ErrModelFormat)
		})
	}
}
