package booking

import "context"

// Confirmation kinds, mirroring the dialog styles of the host page's
// confirmation library.
const (
	ConfirmDanger  = "danger"
	ConfirmSuccess = "success"
)

// Confirmer is the confirmation-dialog collaborator. Destructive row actions
// (cancel, complete, clear-all) suspend on it before touching the store;
// returning false aborts the action with no state change.
type Confirmer interface {
	Confirm(ctx context.Context, title, message, kind string) bool
}

// AutoConfirm approves every confirmation. The HTTP surface uses it because
// the browser already showed the dialog before the request was sent.
type AutoConfirm struct{}

// Confirm always returns true.
func (AutoConfirm) Confirm(context.Context, string, string, string) bool { return true }
