package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementEntryType identifies what kind of document produced a statement row.
type StatementEntryType string

const (
	EntryInvoice  StatementEntryType = "invoice"
	EntryPayment  StatementEntryType = "payment"
	EntryReturn   StatementEntryType = "return"
	EntryPurchase StatementEntryType = "purchase"
)

// StatementEntry is one row of a party account statement. Debit/Credit carry
// the document's local amount and the USD columns its settlement mirror, taken
// from the document itself rather than reconverted at a current rate.
type StatementEntry struct {
	Date                time.Time           `json:"date"`
	Type                StatementEntryType  `json:"type"`
	Reference           string              `json:"reference"`
	Description         string              `json:"description"`
	TransactionCurrency TransactionCurrency `json:"transactionCurrency"`
	Debit               decimal.Decimal     `json:"debit"`
	DebitUSD            decimal.Decimal     `json:"debitUSD"`
	Credit              decimal.Decimal     `json:"credit"`
	CreditUSD           decimal.Decimal     `json:"creditUSD"`
	Balance             decimal.Decimal     `json:"balance"`
	BalanceUSD          decimal.Decimal     `json:"balanceUSD"`
}

// Statement is a party account statement over an optional date range. Opening
// balances fold in every transaction before the range start.
type Statement struct {
	PartyID           string           `json:"partyID"`
	PartyName         string           `json:"partyName"`
	PartyCode         string           `json:"partyCode"`
	StartDate         *time.Time       `json:"startDate"`
	EndDate           *time.Time       `json:"endDate"`
	OpeningBalance    decimal.Decimal  `json:"openingBalance"`
	OpeningBalanceUSD decimal.Decimal  `json:"openingBalanceUSD"`
	ClosingBalance    decimal.Decimal  `json:"closingBalance"`
	ClosingBalanceUSD decimal.Decimal  `json:"closingBalanceUSD"`
	TotalDebit        decimal.Decimal  `json:"totalDebit"`
	TotalDebitUSD     decimal.Decimal  `json:"totalDebitUSD"`
	TotalCredit       decimal.Decimal  `json:"totalCredit"`
	TotalCreditUSD    decimal.Decimal  `json:"totalCreditUSD"`
	Entries           []StatementEntry `json:"entries"`
}
