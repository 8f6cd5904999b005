package export

import (
	"context"
	"time"

	"github.com/mamadbah2/buffercalc/internal/domain/models"
	"github.com/mamadbah2/buffercalc/internal/i18n"
)

// Request is everything an exporter needs: the finished result, the recipe
// text as typed and the total volume.
type Request struct {
	Formula       string
	TotalVolumeML float64
	Result        *models.RecipeResult
	Lang          i18n.Lang
	Now           time.Time
}

// Artifact is the exporter output. File exporters fill Data; remote
// exporters fill URL.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
	URL         string
}

// Exporter writes a result into some spreadsheet target.
type Exporter interface {
	Name() string
	Export(ctx context.Context, req Request) (*Artifact, error)
}

func (r Request) total() float64 {
	if r.TotalVolumeML > 0 || r.Result == nil {
		return r.TotalVolumeML
	}
	return r.Result.TotalVolumeML
}

func (r Request) now() time.Time {
	if r.Now.IsZero() {
		return time.Now()
	}
	return r.Now
}
