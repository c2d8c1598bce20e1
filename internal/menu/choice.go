package menu

import "fmt"

// Choice is the resolved user decision. Destination is set only for
// ActionSaveAs and Viewer only for ActionOpenWith.
type Choice struct {
	Action      Action
	Destination string
	Viewer      string
}

// Upload returns the upload choice.
func Upload() Choice { return Choice{Action: ActionUpload} }

// SaveAs returns a save choice for destination.
func SaveAs(destination string) Choice {
	return Choice{Action: ActionSaveAs, Destination: destination}
}

// OpenWith returns an open-with choice for viewer.
func OpenWith(viewer string) Choice {
	return Choice{Action: ActionOpenWith, Viewer: viewer}
}

// CopyToClipboard returns the clipboard choice.
func CopyToClipboard() Choice { return Choice{Action: ActionCopyToClipboard} }

func (c Choice) String() string {
	switch c.Action {
	case ActionSaveAs:
		return fmt.Sprintf("%s(%s)", c.Action, c.Destination)
	case ActionOpenWith:
		return fmt.Sprintf("%s(%s)", c.Action, c.Viewer)
	default:
		return c.Action.String()
	}
}
