// Package qptrie implements a QP-trie: an in-memory, ordered key→value map
// keyed by byte strings, organized as a radix tree that branches on 4-bit
// half-bytes ("nybbles").
//
// A trie is built from two kinds of twig:
//
//   - a leaf, holding one key and its value;
//   - a branch, recording the nybble offset ("choice") at which its
//     descendants first differ, plus a bitmap that maps a nybble value to
//     a densely packed child slot.
//
// A branch never stores the full prefix its children share — only the
// choice index and the bitmap. Everything about "which branch goes where"
// is recoverable from the leaves alone; see nibble.go for the critical-
// nybble computation that makes this possible, and sparse.go for the
// bitmap-indexed child vector every branch uses to stay densely packed.
//
// The zero-value bitmap has 17 significant bits rather than 16: bit 0 is
// reserved for the sentinel nybble (a key that ends exactly at this
// branch's choice index), and real nybbles 0–15 occupy bits 1–16. This
// keeps the sentinel sorting before every real nybble during iteration,
// so a key sorts before any of its own strict extensions.
package qptrie
