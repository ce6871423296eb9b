package entity

// AdminLoginData is the authenticated identity carried through fiber
// locals after the token middleware accepts a request.
type AdminLoginData struct {
	Username string
}
