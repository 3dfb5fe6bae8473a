/*
Package fund implements a custodial ledger for time boxed fundraising
campaigns.

Anyone can open a campaign by declaring a funding goal and a runtime.
Donations paid into a campaign are held in custody under an address derived
from the campaign id, so no user account can spend them. When the deadline
passes the campaign resolves exactly once: if the goal was reached the owner
withdraws the collected funds, otherwise every donor can claim their donation
back. The owner can also cancel a running campaign, which opens refunds
immediately.
*/
package fund
