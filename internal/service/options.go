package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/Sunil-havanur/Splitwise-Clone/internal/calculator"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/events"
	"github.com/Sunil-havanur/Splitwise-Clone/internal/middleware"
	"github.com/Sunil-havanur/Splitwise-Clone/pkg/api/apiconnect"
)

// PublicProcedures may be called without a token. Every other ledger procedure
// requires an authenticated caller; see middleware.Authenticate.
var PublicProcedures = []string{
	apiconnect.GroupServiceGetGroupProcedure,
	apiconnect.GroupServiceListGroupsProcedure,
	apiconnect.GroupServiceGetGroupBalancesProcedure,
	apiconnect.ExpenseServicePreviewSplitProcedure,
	apiconnect.ExpenseServiceGetExpenseProcedure,
	apiconnect.ExpenseServiceListExpensesByGroupProcedure,
	apiconnect.ExpenseServiceListSettlementsProcedure,
	apiconnect.UserServiceGetUserBalancesProcedure,
	apiconnect.UserServiceGetDashboardProcedure,
}

// dashboardRecentExpenses is how many expenses GetDashboard returns.
const dashboardRecentExpenses = 5

type settings struct {
	logger         *slog.Logger
	formatter      calculator.Formatter
	percentEpsilon decimal.Decimal
	publisher      events.Publisher
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:    slog.Default(),
		formatter: calculator.Formatter{Symbol: calculator.DefaultSymbol},
		publisher: events.Nop{},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures the ledger services.
type Option func(*settings)

// WithLogger sets the service logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithCurrencySymbol sets the glyph used in balance lines.
func WithCurrencySymbol(symbol string) Option {
	return func(s *settings) { s.formatter.Symbol = symbol }
}

// WithPercentEpsilon lets percentage splits sum to within eps of 100.
func WithPercentEpsilon(eps decimal.Decimal) Option {
	return func(s *settings) { s.percentEpsilon = eps }
}

// WithPublisher sets where ledger events go. The default discards them.
func WithPublisher(p events.Publisher) Option {
	return func(s *settings) { s.publisher = p }
}

// publish delivers evt, logging instead of failing the request when delivery fails.
func (s settings) publish(ctx context.Context, evt events.Event) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Event not published",
			"event", evt.Name,
			"group_id", evt.GroupID,
			"subject_id", evt.SubjectID,
			"error", err,
		)
	}
}

// callerID is the authenticated user of the request, or "".
var callerID = middleware.GetUserID
