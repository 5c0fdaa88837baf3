/*
Package contract implements the authorization rules of a contract document
signed by a fixed set of parties.

A Record tracks the hash of the document, the parties that are authorized
to sign it, the subset that already signed and a minimum number of
signatures (threshold) for the document to be considered executed.

Evaluate is the only rule: it decides whether a single proposed action is a
legal transition of a given record. It is a pure function of the record, the
action and the set of identities that attested the enclosing transaction
(attestors). It never reads or writes any storage and never looks up
identities. The caller constructs the successor record (Record.WithSignature)
and persists it.

Evaluate certifies only that adding one more signature is legal. It does
not decide when a document is executed. Record.Executed exposes that
condition for callers, but no transition depends on it.

RecordBucket, Service, Attest and Initializer are the reference callers:
persistence with optimistic versioning, the load-evaluate-save flow,
deriving the attestor set from ed25519 signatures and loading records from
genesis.
*/
package contract
