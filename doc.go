/*
Package docsign defines the value types shared by all docsign packages:
identities (Address), document identifiers (DocumentHash), sets of
identities, conditions, store interfaces and genesis options.

A contract document is signed by collecting signatures from a fixed set of
authorized parties. The authorization rules live in x/contract. This
package only provides the primitives those rules are expressed with.

Identities and document hashes are fixed size byte arrays. Two identities
are the same only if all their bytes are equal, which allows them to be
used as map keys and rules out any loose comparison of display strings.
*/
package docsign
