package themes

import (
	"testing"

	"github.com/Veraticus/hireflow/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Primary, GetTheme("catppuccin-mocha").Primary)
	assert.Equal(t, Default.Primary, GetTheme("unknown").Primary)
}

func TestTheme_Status(t *testing.T) {
	th := Default
	assert.Equal(t, th.StatusSuccess.GetForeground(), th.Status(model.StatusAccepted).GetForeground())
	assert.Equal(t, th.StatusError.GetForeground(), th.Status(model.StatusRejected).GetForeground())
	assert.Equal(t, th.StatusPending.GetForeground(), th.Status(model.StatusPreliminary).GetForeground())
}
