// Package auth implements session-based authentication for the library:
// bcrypt password storage, SQLite-backed sessions, CSRF protection for
// form posts, login rate limiting, and the Gin middleware that exposes the
// signed-in user to handlers.
//
// Pages that require a signed-in user redirect to /login with a ?next=
// parameter; there is no API-token surface, the application is entirely
// server-rendered.
package auth
