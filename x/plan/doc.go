/*
Package plan implements the catalog of saving plans.

A plan is a named set of deposit terms: amount limits, term limits in days, a
yearly interest rate and an early withdrawal penalty, both in basis points.
Plans are created and edited by the admin and are never deleted; an inactive
plan only refuses new deposits. Deposits keep the rates they were opened with,
so editing or deactivating a plan never changes an existing deposit.
*/
package plan
