package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mizan-erp/mizan_backend/internal/core/domain"
)

// statementRow is one ledger line before running balances are applied. The
// localOld value is the signed balance effect in legacy local units, converted
// through the originating document's frozen snapshot.
type statementRow struct {
	entry    domain.StatementEntry
	localOld decimal.Decimal
	usd      decimal.Decimal
	isDebit  bool
}

// statementBuilder accumulates document rows for one party and assembles them
// into a statement. Rows dated before the range start fold into the opening
// balance instead of appearing as entries.
//
// creditIncreases selects the running-balance convention: receivable
// statements grow on debits (zero value), payable statements grow on credits.
// The Debit/Credit column a row lands in is purely presentational; the balance
// effect always matches the sign convention of the party's stored balance.
type statementBuilder struct {
	rows            []statementRow
	creditIncreases bool
}

func (b *statementBuilder) addDebit(date time.Time, entryType domain.StatementEntryType, reference, description string, currency domain.TransactionCurrency, amount, amountUSD, oldUnits decimal.Decimal) {
	localOld, usd := oldUnits, amountUSD
	if b.creditIncreases {
		localOld, usd = localOld.Neg(), usd.Neg()
	}
	b.rows = append(b.rows, statementRow{
		entry: domain.StatementEntry{
			Date:                date,
			Type:                entryType,
			Reference:           reference,
			Description:         description,
			TransactionCurrency: currency,
			Debit:               amount,
			DebitUSD:            amountUSD,
		},
		localOld: localOld,
		usd:      usd,
		isDebit:  true,
	})
}

func (b *statementBuilder) addCredit(date time.Time, entryType domain.StatementEntryType, reference, description string, currency domain.TransactionCurrency, amount, amountUSD, oldUnits decimal.Decimal) {
	localOld, usd := oldUnits.Neg(), amountUSD.Neg()
	if b.creditIncreases {
		localOld, usd = localOld.Neg(), usd.Neg()
	}
	b.rows = append(b.rows, statementRow{
		entry: domain.StatementEntry{
			Date:                date,
			Type:                entryType,
			Reference:           reference,
			Description:         description,
			TransactionCurrency: currency,
			Credit:              amount,
			CreditUSD:           amountUSD,
		},
		localOld: localOld,
		usd:      usd,
	})
}

// build sorts the rows chronologically and produces the statement. The opening
// balance starts from the party's recorded opening figures and absorbs every
// row dated before from; the remaining rows carry running balances.
func (b *statementBuilder) build(partyID, partyName, partyCode string, from, to *time.Time, openingLocal, openingUSD decimal.Decimal) *domain.Statement {
	sort.SliceStable(b.rows, func(i, j int) bool {
		return b.rows[i].entry.Date.Before(b.rows[j].entry.Date)
	})

	st := &domain.Statement{
		PartyID:   partyID,
		PartyName: partyName,
		PartyCode: partyCode,
		StartDate: from,
		EndDate:   to,
	}

	balance := openingLocal
	balanceUSD := openingUSD
	for _, row := range b.rows {
		if from != nil && row.entry.Date.Before(*from) {
			balance = balance.Add(row.localOld)
			balanceUSD = balanceUSD.Add(row.usd)
			continue
		}
		if st.Entries == nil {
			st.OpeningBalance = balance
			st.OpeningBalanceUSD = balanceUSD
			st.Entries = []domain.StatementEntry{}
		}
		balance = balance.Add(row.localOld)
		balanceUSD = balanceUSD.Add(row.usd)

		entry := row.entry
		entry.Balance = balance
		entry.BalanceUSD = balanceUSD
		st.Entries = append(st.Entries, entry)

		if row.isDebit {
			st.TotalDebit = st.TotalDebit.Add(row.localOld.Abs())
			st.TotalDebitUSD = st.TotalDebitUSD.Add(row.usd.Abs())
		} else {
			st.TotalCredit = st.TotalCredit.Add(row.localOld.Abs())
			st.TotalCreditUSD = st.TotalCreditUSD.Add(row.usd.Abs())
		}
	}
	if st.Entries == nil {
		st.OpeningBalance = balance
		st.OpeningBalanceUSD = balanceUSD
	}
	st.ClosingBalance = balance
	st.ClosingBalanceUSD = balanceUSD
	return st
}
