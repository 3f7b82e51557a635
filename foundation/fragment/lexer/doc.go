// File: doc.go
// Title: Fragment Lexer Package Documentation
// Description: Byte sources and the pull-based Fragment tokenizer.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-04
// Modified: 2026-10-10
//
// Change History:
// - 2026-10-04 v0.1.0: Initial lexer
// - 2026-10-10 v0.1.0: Interactive line source

/*
Package lexer turns the bytes of a Fragment source unit into tokens.

The Lexer owns at most one ByteSource at a time. Binding a new source
replaces the old one and resets the line counter, so line numbers never
leak across units. Sources must be named with the .fr extension; BindFile
rejects other paths before touching the file system.

Scanning rules, applied after skipping whitespace and # comments:

  - ( ) ; , are single-byte punctuation
  - a run of ASCII letters is an identifier, or the keywords def and extern
  - a run of digits and dots is a number literal; a run that does not parse
    as a float fails with EXPECTED_NUMBER
  - + - * / < > are binary operators
  - any other byte becomes an UNKNOWN token for the parser to judge

Exactly one EOF token is produced per source; further calls repeat it.
When no source is bound and Options.Interactive is set, tokens are read
from that stream one line at a time under the name <stdin>.
*/
package lexer
