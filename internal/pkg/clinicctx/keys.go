package clinicctx

// Shared Locals keys used across handlers and middlewares
const (
	KeyClinicContext = "CLINIC_CONTEXT"
	KeyClinicID      = "clinic_id"
	KeyUserID        = "user_id"
	KeyIsAdmin       = "isAdmin"
)
