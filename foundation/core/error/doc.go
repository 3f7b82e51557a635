// Package error provides structured error handling for the Fragment toolchain.
//
// Package: error
// Title: Fragment Error Handling Framework
// Description: Structured errors with codes, severity, source locations and
//              free-form details. Lexer, parser and the surrounding tooling
//              report every failure through this package so that drivers can
//              print uniform "file:line: message" diagnostics.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-02
// Modified: 2026-10-09
//
// Change History:
// - 2026-10-02 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-09 v0.1.0: Source locations and compiler error codes
//
// Usage:
//   import mdwerror "github.com/msto63/fragment/foundation/core/error"
//
//   err := mdwerror.New("unexpected token ')'").
//     WithCode(mdwerror.CodeUnexpectedToken).
//     WithLocation("main.fr", 3)
//
//   if mdwerror.HasCode(err, mdwerror.CodeUnexpectedToken) {
//     fmt.Println(mdwerror.Diagnostic(err)) // main.fr:3: unexpected token ')'
//   }
package error
