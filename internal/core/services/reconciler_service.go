package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookease/bookease/internal/core/domain"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
	"github.com/bookease/bookease/internal/dto"
	"github.com/bookease/bookease/internal/middleware"
)

// exportHeader is the flat-record wire format at the import/export
// boundary: one row per journal line.
var exportHeader = []string{
	"Date", "Entry Description", "Reference", "Status",
	"Account", "Line Description", "Debit", "Credit",
}

// reconcilerService implements portssvc.ReconcilerService. Import is a
// batch client of the posting engine: groups marked Posted go through the
// same validation and atomic balance application as interactive entries.
type reconcilerService struct {
	journalSvc  portssvc.JournalService
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
}

// NewReconcilerService creates the import/export facade.
func NewReconcilerService(journalSvc portssvc.JournalService, journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository) portssvc.ReconcilerService {
	return &reconcilerService{
		journalSvc:  journalSvc,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.ReconcilerService = (*reconcilerService)(nil)

// ExportRecords writes all entries as CSV, newest entry date first. Fields
// containing the delimiter or quotes are quoted with internal quotes
// doubled, per the csv package.
func (s *reconcilerService) ExportRecords(ctx context.Context, w io.Writer) (int, error) {
	entries, err := s.journalSvc.ListEntries(ctx)
	if err != nil {
		return 0, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return 0, err
	}
	nameByID := make(map[string]string, len(accounts))
	for _, a := range accounts {
		nameByID[a.AccountID] = a.Name
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return 0, fmt.Errorf("failed to write export header: %w", err)
	}

	rows := 0
	for _, entry := range entries {
		for _, line := range entry.Lines {
			record := []string{
				entry.Date.UTC().Format(time.RFC3339),
				entry.Description,
				entry.Reference,
				string(entry.Status),
				nameByID[line.AccountID],
				line.Description,
				line.Debit.String(),
				line.Credit.String(),
			}
			if err := cw.Write(record); err != nil {
				return rows, fmt.Errorf("failed to write export row: %w", err)
			}
			rows++
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return rows, fmt.Errorf("failed to flush export: %w", err)
	}
	return rows, nil
}

// entryGroup collects the rows belonging to one candidate entry, keyed by
// (date, description, reference).
type entryGroup struct {
	date        time.Time
	description string
	reference   string
	status      domain.EntryStatus
	lines       []dto.CreateEntryLine
}

// ImportRecords parses the flat export format and creates the entries that
// do not already exist. Unparsable rows and unknown account names become
// warnings; a group whose surviving lines no longer form a valid entry is
// skipped with a warning. Only failure to read the input fails the batch.
func (s *reconcilerService) ImportRecords(ctx context.Context, r io.Reader) (*dto.ImportSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	summary := &dto.ImportSummary{}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read import data: %w", err)
	}
	if len(records) == 0 {
		return summary, nil
	}

	// Account names resolve case-insensitively after trimming.
	accounts, err := s.accountRepo.ListAccounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts for import: %w", err)
	}
	idByName := make(map[string]string, len(accounts))
	for _, a := range accounts {
		idByName[strings.ToLower(strings.TrimSpace(a.Name))] = a.AccountID
	}

	groups := make(map[string]*entryGroup)
	order := make([]string, 0)

	for i, record := range records[1:] { // skip header
		rowNum := i + 2 // 1-based, counting the header
		if isBlankRecord(record) {
			continue
		}
		if len(record) < 8 {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("row %d: expected 8 columns, got %d", rowNum, len(record)))
			continue
		}

		for j := range record {
			record[j] = strings.TrimSpace(record[j])
		}
		dateStr, entryDesc, ref, status := record[0], record[1], record[2], record[3]
		accountName, lineDesc, debitStr, creditStr := record[4], record[5], record[6], record[7]

		if dateStr == "" {
			continue
		}
		date, err := parseFlexibleDate(dateStr)
		if err != nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("row %d: invalid date %q", rowNum, dateStr))
			continue
		}

		key := date.UTC().Format(time.RFC3339) + "|" + entryDesc + "|" + ref
		group, exists := groups[key]
		if !exists {
			group = &entryGroup{
				date:        date,
				description: entryDesc,
				reference:   ref,
				status:      domain.Draft,
			}
			if strings.EqualFold(status, string(domain.Posted)) {
				group.status = domain.Posted
			}
			groups[key] = group
			order = append(order, key)
		}

		accountID, found := idByName[strings.ToLower(accountName)]
		if !found {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("row %d: account %q not found", rowNum, accountName))
			continue
		}

		group.lines = append(group.lines, dto.CreateEntryLine{
			AccountID:   accountID,
			Debit:       parseAmount(debitStr),
			Credit:      parseAmount(creditStr),
			Description: lineDesc,
		})
	}

	for _, key := range order {
		group := groups[key]

		day := group.date.UTC().Format("2006-01-02")
		existingID, err := s.journalRepo.FindEntryIDByNaturalKey(ctx, day, group.description, group.reference)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate entry: %w", err)
		}
		if existingID != "" {
			logger.Info("Skipping duplicate entry on import",
				slog.String("date", day), slog.String("description", group.description))
			summary.Skipped++
			continue
		}

		req := dto.CreateEntryRequest{
			Date:        group.date,
			Description: group.description,
			Reference:   group.reference,
			Status:      group.status,
			Lines:       group.lines,
		}
		if _, err := s.journalSvc.CreateEntry(ctx, req); err != nil {
			summary.Warnings = append(summary.Warnings, fmt.Sprintf("entry %q (%s): %v", group.description, day, err))
			summary.Skipped++
			continue
		}
		summary.Imported++
	}

	logger.Info("Import finished",
		slog.Int("imported", summary.Imported),
		slog.Int("skipped", summary.Skipped),
		slog.Int("warnings", len(summary.Warnings)))
	return summary, nil
}

func isBlankRecord(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// parseAmount reads a decimal amount the way the export writes it. Blank
// or malformed amounts count as zero; the line-level invariants catch
// lines that end up with no positive side.
func parseAmount(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}

// parseFlexibleDate parses ISO-8601 first, then falls back to splitting on
// '-' or '/' and disambiguating year-first vs day-first by whether the
// leading segment has four digits. Spreadsheet exports commonly re-format
// dates into the user's locale.
func parseFlexibleDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	parts := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
	}

	var year, month, day int
	if len(parts[0]) == 4 {
		// Year first: YYYY-MM-DD or YYYY/MM/DD.
		if _, err := fmt.Sscanf(parts[0]+" "+parts[1]+" "+parts[2], "%d %d %d", &year, &month, &day); err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
		}
	} else {
		// Day first: DD/MM/YYYY or DD-MM-YYYY.
		if _, err := fmt.Sscanf(parts[2]+" "+parts[1]+" "+parts[0], "%d %d %d", &year, &month, &day); err != nil {
			return time.Time{}, fmt.Errorf("unrecognized date format %q", s)
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date out of range %q", s)
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}
