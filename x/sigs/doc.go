/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

A depositor is whoever signed the transaction. The ledger never sees a
private key: it only compares the addresses of the verified signature
conditions against the certificate holder or the configured admin.
*/
package sigs
