// Package auth is the authentication and authorization core for the
// credit underwriting service: bcrypt credential hashing, HS256 bearer
// token issuance and validation, and the identity resolution chain that
// every protected endpoint goes through.
//
// Layering:
//   - HashPassword / ComparePasswordAndHash hash and verify passwords.
//     Both paths truncate input to bcrypt's 72 byte limit so long
//     passwords registered once keep verifying forever.
//   - TokenService signs a claims set with a single process-wide
//     symmetric secret and validates it back. Expired, tampered, and
//     malformed tokens collapse into one invalid-token error on
//     purpose; callers get no oracle to probe.
//   - Auther turns (email, password) into an Identity, or into
//     ErrInvalidCredentials. Unknown emails and wrong passwords are
//     indistinguishable to avoid account enumeration.
//   - AccessResolver re-resolves the token subject against the user
//     directory on every call, then optionally enforces the admin flag.
//     There is no session cache; a deleted account invalidates its
//     outstanding tokens immediately.
//
// The user directory is consumed through the UserDirectory interface.
// A Bun-backed implementation lives in this package (NewUsersRepository)
// but any store that can look up a user by email will do.
package auth
