package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookease/bookease/internal/core/domain"
	portsrepo "github.com/bookease/bookease/internal/core/ports/repositories"
	portssvc "github.com/bookease/bookease/internal/core/ports/services"
	"github.com/bookease/bookease/internal/dto"
	"github.com/bookease/bookease/internal/middleware"
)

// DefaultAccount is one template row of the default chart of accounts.
type DefaultAccount struct {
	Code    string
	Name    string
	Type    domain.AccountType
	Subtype string
}

// DefaultChartOfAccounts is the standard small-business chart seeded on
// first run.
var DefaultChartOfAccounts = []DefaultAccount{
	// Assets (1000-1999)
	{Code: "1000", Name: "Assets", Type: domain.Asset},
	{Code: "1100", Name: "Current Assets", Type: domain.Asset, Subtype: "Current Asset"},
	{Code: "1101", Name: "Cash on Hand", Type: domain.Asset, Subtype: "Current Asset"},
	{Code: "1102", Name: "Cash in Bank", Type: domain.Asset, Subtype: "Current Asset"},
	{Code: "1103", Name: "Petty Cash", Type: domain.Asset, Subtype: "Current Asset"},
	{Code: "1200", Name: "Accounts Receivable", Type: domain.Asset, Subtype: "Current Asset"},
	{Code: "1300", Name: "Inventory", Type: domain.Asset, Subtype: "Current Asset"},
	{Code: "1500", Name: "Fixed Assets", Type: domain.Asset, Subtype: "Fixed Asset"},
	{Code: "1501", Name: "Equipment", Type: domain.Asset, Subtype: "Fixed Asset"},
	{Code: "1502", Name: "Furniture & Fixtures", Type: domain.Asset, Subtype: "Fixed Asset"},
	{Code: "1503", Name: "Vehicles", Type: domain.Asset, Subtype: "Fixed Asset"},

	// Liabilities (2000-2999)
	{Code: "2000", Name: "Liabilities", Type: domain.Liability},
	{Code: "2100", Name: "Current Liabilities", Type: domain.Liability, Subtype: "Current Liability"},
	{Code: "2101", Name: "Accounts Payable", Type: domain.Liability, Subtype: "Current Liability"},
	{Code: "2102", Name: "Credit Card Payable", Type: domain.Liability, Subtype: "Current Liability"},
	{Code: "2103", Name: "Sales Tax Payable", Type: domain.Liability, Subtype: "Current Liability"},
	{Code: "2200", Name: "Long-term Liabilities", Type: domain.Liability, Subtype: "Long-term Liability"},
	{Code: "2201", Name: "Loans Payable", Type: domain.Liability, Subtype: "Long-term Liability"},

	// Equity (3000-3999)
	{Code: "3000", Name: "Equity", Type: domain.Equity},
	{Code: "3100", Name: "Owner's Equity", Type: domain.Equity},
	{Code: "3200", Name: "Retained Earnings", Type: domain.Equity},

	// Income (4000-4999)
	{Code: "4000", Name: "Income", Type: domain.Income},
	{Code: "4100", Name: "Sales Revenue", Type: domain.Income},
	{Code: "4200", Name: "Service Revenue", Type: domain.Income},
	{Code: "4300", Name: "Other Income", Type: domain.Income},

	// Expenses (5000-5999)
	{Code: "5000", Name: "Expenses", Type: domain.Expense},
	{Code: "5100", Name: "Cost of Goods Sold", Type: domain.Expense},
	{Code: "5200", Name: "Operating Expenses", Type: domain.Expense},
	{Code: "5201", Name: "Rent Expense", Type: domain.Expense},
	{Code: "5202", Name: "Utilities Expense", Type: domain.Expense},
	{Code: "5203", Name: "Salaries & Wages", Type: domain.Expense},
	{Code: "5204", Name: "Office Supplies", Type: domain.Expense},
	{Code: "5205", Name: "Marketing & Advertising", Type: domain.Expense},
	{Code: "5206", Name: "Insurance Expense", Type: domain.Expense},
	{Code: "5207", Name: "Depreciation Expense", Type: domain.Expense},
	{Code: "5300", Name: "Other Expenses", Type: domain.Expense},
}

// seedService implements portssvc.SeedService.
type seedService struct {
	accountSvc  portssvc.AccountService
	accountRepo portsrepo.AccountRepository
}

// NewSeedService creates the first-run seeding facade.
func NewSeedService(accountSvc portssvc.AccountService, accountRepo portsrepo.AccountRepository) portssvc.SeedService {
	return &seedService{accountSvc: accountSvc, accountRepo: accountRepo}
}

var _ portssvc.SeedService = (*seedService)(nil)

// SeedDefaultAccounts creates the default chart of accounts when the store
// holds no accounts at all, inactive ones included.
func (s *seedService) SeedDefaultAccounts(ctx context.Context) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		logger.Debug("Accounts already exist, skipping seed", slog.Int64("count", count))
		return 0, nil
	}

	created := 0
	for _, template := range DefaultChartOfAccounts {
		req := dto.CreateAccountRequest{
			Code:    template.Code,
			Name:    template.Name,
			Type:    template.Type,
			Subtype: template.Subtype,
		}
		if _, err := s.accountSvc.CreateAccount(ctx, req); err != nil {
			return created, fmt.Errorf("failed to seed account %s: %w", template.Code, err)
		}
		created++
	}

	logger.Info("Seeded default chart of accounts", slog.Int("count", created))
	return created, nil
}
