/*
Package access implements the admin role of the saving bank.

A single admin address manages plans, the pause switch, the penalty receiver
and the vault liquidity. While the system is paused every mutating deposit
operation fails with ErrEnforcedPause. Reads are never paused.

The admin role is independent of deposit ownership: the admin cannot withdraw
or renew a deposit it does not hold.
*/
package access
