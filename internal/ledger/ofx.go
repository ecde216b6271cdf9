package ledger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"regexp"
	"slices"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// Opening tag at end of line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Statement is the part of an OFX/QFX download the budget needs.
type Statement struct {
	Income   decimal.Decimal   // sum of all credits
	Records  []model.RawRecord // one per debit, amount made positive
	Accounts []string
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ReadOFX parses a bank or credit card statement. Debits become raw ledger
// records; credits are added up as income.
func ReadOFX(ctx context.Context, r io.Reader) (Statement, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return Statement{}, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return Statement{}, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := Statement{Income: decimal.Zero}
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if err := ctx.Err(); err != nil {
			return Statement{}, err
		}
		if s, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			stmt.addAccount(string(s.BankAcctFrom.AcctID))
			if s.BankTranList != nil {
				stmt.addTransactions(s.BankTranList.Transactions)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if err := ctx.Err(); err != nil {
			return Statement{}, err
		}
		if s, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			stmt.addAccount(string(s.CCAcctFrom.AcctID))
			if s.BankTranList != nil {
				stmt.addTransactions(s.BankTranList.Transactions)
			}
		}
	}

	slog.Info("Parsed OFX file",
		"debits", len(stmt.Records),
		"income", stmt.Income.StringFixed(2),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return stmt, nil
}

func (s *Statement) addAccount(id string) {
	if id != "" && !slices.Contains(s.Accounts, id) {
		s.Accounts = append(s.Accounts, id)
	}
}

func (s *Statement) addTransactions(txns []ofxgo.Transaction) {
	for _, tx := range txns {
		// OFX uses negative amounts for debits.
		if tx.TrnAmt.Sign() > 0 {
			credit, err := decimal.NewFromString(tx.TrnAmt.FloatString(2))
			if err != nil {
				slog.Warn("Skipping unreadable credit", "fitid", tx.FiTID, "error", err)
				continue
			}
			s.Income = s.Income.Add(credit)
			continue
		}

		s.Records = append(s.Records, model.RawRecord{
			Date:        tx.DtPosted.Format("2006-01-02"),
			Description: extractMerchantName(tx),
			Amount:      new(big.Rat).Abs(&tx.TrnAmt.Rat).FloatString(2),
		})
	}
}

// narrationFormats are transfer narrations such as
// "UPI/412345678901/SWIGGY/swiggy@icici". The body is split on sep and the
// first segment that is not a reference is the counterparty.
var narrationFormats = []struct {
	prefix string
	sep    string
}{
	{prefix: "UPI/", sep: "/"},
	{prefix: "UPI-", sep: "-"},
	{prefix: "IMPS/", sep: "/"},
	{prefix: "IMPS-", sep: "-"},
	{prefix: "NEFT/", sep: "/"},
	{prefix: "NEFT-", sep: "-"},
	{prefix: "RTGS/", sep: "/"},
	{prefix: "RTGS-", sep: "-"},
}

// cardPrefixes precede the merchant in card narrations. Longer prefixes come
// first.
var cardPrefixes = []string{
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"POS PURCHASE ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"ACH DEBIT ",
	"ECOM PUR ",
	"ATM WDL ",
	"POS ",
}

// Transfer direction codes that carry no name.
var narrationCodes = []string{"DR", "CR", "P2A", "P2M", "MOB", "NET"}

func extractMerchantName(tx ofxgo.Transaction) string {
	// PAYEE is usually cleaner than NAME.
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	if party, ok := narrationParty(name); ok {
		return party
	}
	return stripLeadingDate(trimCardPrefix(name))
}

// narrationParty returns the counterparty of a UPI, IMPS, NEFT or RTGS
// narration. It reports false for other text and for narrations made only of
// references.
func narrationParty(name string) (string, bool) {
	upper := strings.ToUpper(name)
	for _, f := range narrationFormats {
		if !strings.HasPrefix(upper, f.prefix) {
			continue
		}
		for _, segment := range strings.Split(name[len(f.prefix):], f.sep) {
			segment = strings.TrimSpace(segment)
			if !isReference(segment) {
				return segment, true
			}
		}
		return "", false
	}
	return "", false
}

// isReference reports whether a narration segment is a reference number, IFSC
// code, UPI handle or direction code rather than a name.
func isReference(segment string) bool {
	switch {
	case segment == "":
		return true
	case strings.Contains(segment, "@"):
		return true
	case slices.Contains(narrationCodes, strings.ToUpper(segment)):
		return true
	case !strings.Contains(segment, " ") && strings.ContainsAny(segment, "0123456789"):
		return true
	default:
		return false
	}
}

// trimCardPrefix drops a card narration prefix and a masked card number after
// it, e.g. "POS 4321XXXX1234 BIG BAZAAR".
func trimCardPrefix(name string) string {
	upper := strings.ToUpper(name)
	for _, prefix := range cardPrefixes {
		if !strings.HasPrefix(upper, prefix) {
			continue
		}
		name = strings.TrimSpace(name[len(prefix):])
		if first, rest, ok := strings.Cut(name, " "); ok && isMaskedCard(first) {
			name = strings.TrimSpace(rest)
		}
		return name
	}
	return name
}

func isMaskedCard(word string) bool {
	return strings.ContainsAny(word, "0123456789") && strings.ContainsAny(strings.ToUpper(word), "X*")
}

// stripLeadingDate removes a leading "MM/DD " or "DD-MM " date.
func stripLeadingDate(name string) string {
	if len(name) <= 6 || name[5] != ' ' || (name[2] != '/' && name[2] != '-') {
		return name
	}
	for _, i := range []int{0, 1, 3, 4} {
		if name[i] < '0' || name[i] > '9' {
			return name
		}
	}
	return strings.TrimSpace(name[6:])
}

func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
		"UPI TRANSACTION",
		"FUND TRANSFER",
	}
	return slices.Contains(generic, strings.ToUpper(name))
}
