// Package compiler translates a single if/else construct guarding integer
// assignments into flat three-address code.
//
// Pipeline: source → Lex → Parse → Check → Generate → instruction lines
//
// The stages run strictly in order with no feedback; Compile bundles all
// four. The only state that outlives a run is the symbol table mapping,
// which a session may thread from one compilation into the next.
package compiler
