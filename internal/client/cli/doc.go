// Package cli implements the interactive authkernel client: a small REPL
// that registers, logs in, shows the current user and verifies the saved
// session token against the server.
//
// Passwords are read without echo and wiped after use. The token is kept in
// a 0600 file (see client.TokenStore); "logout" deletes it.
package cli
