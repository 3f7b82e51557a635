// File: doc.go
// Title: Fragment Engine Package Documentation
// Description: Entry point tying the Fragment lexer and parser together.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-06
// Modified: 2026-10-12
//
// Change History:
// - 2026-10-06 v0.1.0: Initial engine

// Package fragment is the front end of the Fragment language.
//
// An Engine parses source units from files, in-memory buffers or an
// interactive stream:
//
//	engine := fragment.New(fragment.Options{Logger: logger})
//	unit, err := engine.ParseFile("prog.fr")
//	if err != nil {
//		fmt.Fprintln(os.Stderr, mdwerror.Diagnostic(err))
//	}
//	for _, node := range unit.Nodes {
//		fmt.Println(node)
//	}
//
// Subpackages hold the pieces: token (tokens and the precedence table),
// lexer (byte sources and tokenizer), ast (syntax trees) and parser.
package fragment
