/*
Package ledger records money movements between the single cash wallet and
the named gcash accounts.

Four operations exist, each atomic against the database:

  - CashIn: customer hands over cash, the shop sends gcash. Gcash account
    down, cash wallet up, fee computed and recorded.
  - CashOut: the mirror. Gcash account up, cash wallet down, same fee rules.
  - MoveCapital: internal float rebalancing between any two accounts, no fee.
  - Adjust: one-sided correction entry for found or lost cash.

Money is conserved across cash-in, cash-out and capital moves: the sum of
all balances is the same before and after. Adjustments deliberately break
conservation. Fees are recorded on the transaction row for income reporting
but are not themselves moved between balances.

Every operation snapshots the affected gcash account's balance before
mutation onto the transaction's PreviousBalance, so later reconciliation
does not have to replay the ledger.
*/
package ledger
