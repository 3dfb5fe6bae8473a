/*
Package cash defines a simple implementation of moving coins
between wallets.

There is no logic in the coins (tokens), except that the balance
of any wallet may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.

Other extensions move value through the Controller interface
rather than touching wallets directly, so custody rules stay in
one place.
*/
package cash
