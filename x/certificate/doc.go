/*
Package certificate implements the registry of deposit certificates.

A certificate is a non fungible unit identified by the id of the deposit it
stands for. Its holder is the only address allowed to withdraw or renew the
deposit. Certificates are minted and burned by a single bound minter and can
be transferred freely by their holder, or by an address the holder approved,
without the minter being involved.
*/
package certificate
