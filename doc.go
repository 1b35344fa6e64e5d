/*
Package savingbank defines interfaces used throughout the saving bank
application, such as: storage, transactions, handlers, events and queries.
It also contains helpers to work with context, addresses and abci.

The domain lives in the x/ extensions. A fixed-term deposit is created by the
ledger extension, which takes custody of the principal in the vault and mints a
certificate to the depositor. Whoever holds the certificate owns the deposit.
*/
package savingbank
