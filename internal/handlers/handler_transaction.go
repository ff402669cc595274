package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/dto"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/SscSPs/finance_tracker/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests for the ledger and transaction queries.
type transactionHandler struct {
	ledgerService portssvc.LedgerSvc
	queryService  portssvc.TransactionQuerySvc
}

func newTransactionHandler(ls portssvc.LedgerSvc, qs portssvc.TransactionQuerySvc) *transactionHandler {
	return &transactionHandler{ledgerService: ls, queryService: qs}
}

// RegisterTransactionRoutes registers the transaction routes plus the
// per-user and per-account listings.
func RegisterTransactionRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc, queryService portssvc.TransactionQuerySvc) {
	h := newTransactionHandler(ledgerService, queryService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.createTransaction)
		transactions.GET("/filter", h.listFilteredTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.editTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}

	rg.GET("/users/:id/transactions", h.listTransactionsForUser)

	accounts := rg.Group("/accounts/:id")
	{
		accounts.GET("/transactions", h.listTransactionsForAccount)
		accounts.GET("/statement", h.getAccountStatement)
	}
}

// createTransaction godoc
// @Summary Book a transaction
// @Description Creates an income or expense transaction and updates the account and budget balances
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Not the account owner or insufficient funds"
// @Failure 404 {object} map[string]string "Referenced entity not found"
// @Failure 502 {object} map[string]string "Currency conversion failed"
// @Failure 500 {object} map[string]string "Failed to create transaction"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	view, err := h.ledgerService.CreateTransaction(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	logger.Info("Transaction created", slog.Int64("transaction_id", view.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(*view))
}

// editTransaction godoc
// @Summary Edit a transaction
// @Description Replaces a transaction's values, reversing its old effect on balances and applying the new one
// @Tags transactions
// @Accept  json
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Param   transaction body dto.EditTransactionRequest true "New transaction values"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Not the account owner or insufficient funds"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 502 {object} map[string]string "Currency conversion failed"
// @Failure 500 {object} map[string]string "Failed to edit transaction"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) editTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	transactionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.EditTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for EditTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	if req.Date.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	view, err := h.ledgerService.EditTransaction(c.Request.Context(), transactionID, req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to edit transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*view))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and reverses its effect on the account and budget balances
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Not the account owner"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 500 {object} map[string]string "Failed to delete transaction"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	transactionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.ledgerService.DeleteTransaction(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}
	logger.Info("Transaction deleted", slog.Int64("transaction_id", transactionID))
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*view))
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce  json
// @Param   id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Not the account owner"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /transactions/{id} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	transactionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	view, err := h.queryService.GetTransactionByID(c.Request.Context(), transactionID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(*view))
}

// listFilteredTransactions godoc
// @Summary Filter an account's transactions
// @Description Lists transactions of an account dated within an inclusive range, optionally for one category
// @Tags transactions
// @Produce  json
// @Param   start-date query string true "Start date (YYYY-MM-DD)"
// @Param   end-date query string true "End date (YYYY-MM-DD)"
// @Param   account-id query int true "Account ID"
// @Param   category-id query int false "Category ID"
// @Param   page query int false "Zero-based page"
// @Param   size query int false "Page size (max 100)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Not the account owner"
// @Failure 404 {object} map[string]string "No transactions match"
// @Security BearerAuth
// @Router /transactions/filter [get]
func (h *transactionHandler) listFilteredTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}

	var params dto.ListFilteredParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListFilteredTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	start, end, ok := parseDateRange(c, params.StartDate, params.EndDate)
	if !ok {
		return
	}

	filter := dto.TransactionFilter{
		StartDate:  start,
		EndDate:    end,
		CategoryID: params.CategoryID,
		AccountID:  params.AccountID,
	}
	page, err := h.queryService.ListFilteredTransactions(c.Request.Context(), filter, userID, params.Params)
	if err != nil {
		respondError(c, logger, err, "Failed to filter transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(*page))
}

// listTransactionsForUser godoc
// @Summary List a user's transactions
// @Tags transactions
// @Produce  json
// @Param   id path int true "User ID"
// @Param   page query int false "Zero-based page"
// @Param   size query int false "Page size (max 100)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Not the same user"
// @Failure 404 {object} map[string]string "No transactions"
// @Security BearerAuth
// @Router /users/{id}/transactions [get]
func (h *transactionHandler) listTransactionsForUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	actingUserID, ok := actingUser(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}
	params, ok := bindPage(c)
	if !ok {
		return
	}

	page, err := h.queryService.ListTransactionsForUser(c.Request.Context(), userID, actingUserID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(*page))
}

// listTransactionsForAccount godoc
// @Summary List an account's transactions
// @Tags transactions
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   page query int false "Zero-based page"
// @Param   size query int false "Page size (max 100)"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Not the account owner"
// @Failure 404 {object} map[string]string "No transactions"
// @Security BearerAuth
// @Router /accounts/{id}/transactions [get]
func (h *transactionHandler) listTransactionsForAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "id")
	if !ok {
		return
	}
	params, ok := bindPage(c)
	if !ok {
		return
	}

	page, err := h.queryService.ListTransactionsForAccount(c.Request.Context(), accountID, userID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(*page))
}

// getAccountStatement godoc
// @Summary Account statement
// @Description Totals income, expense and net of an account over an inclusive date range
// @Tags transactions
// @Produce  json
// @Param   id path int true "Account ID"
// @Param   start-date query string true "Start date (YYYY-MM-DD)"
// @Param   end-date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} dto.AccountStatementResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 401 {object} map[string]string "Not the account owner"
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /accounts/{id}/statement [get]
func (h *transactionHandler) getAccountStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := actingUser(c)
	if !ok {
		return
	}
	accountID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var params dto.StatementParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	start, end, ok := parseDateRange(c, params.StartDate, params.EndDate)
	if !ok {
		return
	}

	statement, err := h.queryService.GetAccountStatement(c.Request.Context(), accountID, userID, start, end)
	if err != nil {
		respondError(c, logger, err, "Failed to build account statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountStatementResponse(*statement))
}

func bindPage(c *gin.Context) (pagination.Params, bool) {
	var params pagination.Params
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination parameters: " + err.Error()})
		return params, false
	}
	return params, true
}
