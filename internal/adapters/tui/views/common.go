package views

// ViewState contains the size and status message shared by all view models.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the status line
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching, handled by the app

// SwitchToHelpMsg opens the key reference
type SwitchToHelpMsg struct{}

// SwitchToBrowserMsg returns to the mapping list
type SwitchToBrowserMsg struct{}

// OpenEditorMsg asks the app to suspend and edit a file
type OpenEditorMsg struct {
	Path string
}

type errMsg struct {
	err error
}
