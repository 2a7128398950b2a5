// Package ui holds the ANSI themes shared by zzcalc's presentation
// layers. The REPL, the one-shot evaluator, and the batch reporter all
// pull their escape codes from the active theme, so a single -no-color
// switch (or NO_COLOR in the environment) silences color everywhere at
// once.
package ui
