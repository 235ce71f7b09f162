// Package view derives renderable UI state from lifecycle manager
// output. It is pure: no remote calls, no timers, state changes only
// when the caller re-projects after a lifecycle call settles.
package view

import (
	"fmt"
	"time"

	"github.com/SujallG/Secure-Media-Vault/models"
)

// State is the primary render state of the vault page.
type State string

const (
	// StateLoading: the initial fetch is in flight. Takes precedence
	// over everything else.
	StateLoading State = "loading"
	// StateEmpty: fetch complete, zero assets.
	StateEmpty State = "empty"
	// StatePopulated: fetch complete, at least one asset.
	StatePopulated State = "populated"
)

// AssetCard is one asset prepared for rendering.
type AssetCard struct {
	ID        string             `json:"id"`
	Filename  string             `json:"filename"`
	Status    models.AssetStatus `json:"status"`
	SizeLabel string             `json:"size_label"`
	DateLabel string             `json:"date_label"`
	// Downloadable is true only for ready assets; no download control
	// renders otherwise.
	Downloadable bool `json:"downloadable"`
}

// View is the full projected page state. UploadInProgress is orthogonal
// to State: while true the upload control is disabled and new
// submissions are rejected.
type View struct {
	State            State       `json:"state"`
	UploadInProgress bool        `json:"upload_in_progress"`
	Assets           []AssetCard `json:"assets"`
}

// Project maps {loading, uploading, assets} to a renderable View.
func Project(loading, uploading bool, assets []*models.Asset) View {
	v := View{UploadInProgress: uploading}

	switch {
	case loading:
		v.State = StateLoading
	case len(assets) == 0:
		v.State = StateEmpty
	default:
		v.State = StatePopulated
		v.Assets = make([]AssetCard, 0, len(assets))
		for _, a := range assets {
			v.Assets = append(v.Assets, AssetCard{
				ID:           a.ID.String(),
				Filename:     a.Filename,
				Status:       a.Status,
				SizeLabel:    SizeLabel(a.Size),
				DateLabel:    DateLabel(a.CreatedAt),
				Downloadable: a.Status == models.AssetStatusReady,
			})
		}
	}

	return v
}

// SizeLabel renders a byte count in KiB with one decimal, e.g. "2.0 KB".
func SizeLabel(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}

// DateLabel renders the creation date the way the page shows it.
func DateLabel(t time.Time) string {
	return t.Local().Format("1/2/2006")
}
