package ui

import "phprun/internal/storage"

// Viewer displays the saved panel output
type Viewer interface {
	View(out storage.PanelOutput) error
}
