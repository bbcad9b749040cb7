package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// StatementEntryResponse defines one row of a party statement.
type StatementEntryResponse struct {
	Date                time.Time       `json:"date"`
	Type                string          `json:"type"`
	Reference           string          `json:"reference"`
	Description         string          `json:"description"`
	TransactionCurrency string          `json:"transactionCurrency"`
	Debit               decimal.Decimal `json:"debit"`
	DebitUSD            decimal.Decimal `json:"debitUSD"`
	Credit              decimal.Decimal `json:"credit"`
	CreditUSD           decimal.Decimal `json:"creditUSD"`
	Balance             decimal.Decimal `json:"balance"`
	BalanceUSD          decimal.Decimal `json:"balanceUSD"`
}

// StatementResponse defines a party account statement.
type StatementResponse struct {
	PartyID           string                   `json:"partyID"`
	PartyName         string                   `json:"partyName"`
	PartyCode         string                   `json:"partyCode"`
	StartDate         *time.Time               `json:"startDate"`
	EndDate           *time.Time               `json:"endDate"`
	OpeningBalance    decimal.Decimal          `json:"openingBalance"`
	OpeningBalanceUSD decimal.Decimal          `json:"openingBalanceUSD"`
	ClosingBalance    decimal.Decimal          `json:"closingBalance"`
	ClosingBalanceUSD decimal.Decimal          `json:"closingBalanceUSD"`
	TotalDebit        decimal.Decimal          `json:"totalDebit"`
	TotalDebitUSD     decimal.Decimal          `json:"totalDebitUSD"`
	TotalCredit       decimal.Decimal          `json:"totalCredit"`
	TotalCreditUSD    decimal.Decimal          `json:"totalCreditUSD"`
	Entries           []StatementEntryResponse `json:"entries"`
}

// ToStatementResponse converts a domain.Statement to StatementResponse DTO
func ToStatementResponse(st *domain.Statement) StatementResponse {
	entries := make([]StatementEntryResponse, len(st.Entries))
	for i, e := range st.Entries {
		entries[i] = StatementEntryResponse{
			Date:                e.Date,
			Type:                string(e.Type),
			Reference:           e.Reference,
			Description:         e.Description,
			TransactionCurrency: string(e.TransactionCurrency),
			Debit:               e.Debit,
			DebitUSD:            e.DebitUSD,
			Credit:              e.Credit,
			CreditUSD:           e.CreditUSD,
			Balance:             e.Balance,
			BalanceUSD:          e.BalanceUSD,
		}
	}
	return StatementResponse{
		PartyID:           st.PartyID,
		PartyName:         st.PartyName,
		PartyCode:         st.PartyCode,
		StartDate:         st.StartDate,
		EndDate:           st.EndDate,
		OpeningBalance:    st.OpeningBalance,
		OpeningBalanceUSD: st.OpeningBalanceUSD,
		ClosingBalance:    st.ClosingBalance,
		ClosingBalanceUSD: st.ClosingBalanceUSD,
		TotalDebit:        st.TotalDebit,
		TotalDebitUSD:     st.TotalDebitUSD,
		TotalCredit:       st.TotalCredit,
		TotalCreditUSD:    st.TotalCreditUSD,
		Entries:           entries,
	}
}
