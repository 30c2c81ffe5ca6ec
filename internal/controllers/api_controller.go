package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"vestd/internal/models"
	"vestd/internal/providers"
	"vestd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// callerHeader carries the caller identity asserted by the fronting proxy.
// Operations that require the owner compare it against the recorded owner.
const callerHeader = "X-Caller"

type ApiController struct {
	logger  providers.Logger
	service services.ContractServiceInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
}

func NewApiController(logger providers.Logger, service services.ContractServiceInterface, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface) *ApiController {
	return &ApiController{
		logger:  logger,
		service: service,
		cache:   cache,
		metrics: metrics,
	}
}

type migrateRequest struct {
	Entries    []models.MigrationEntry `json:"entries"`
	MintAmount uint64                  `json:"mint_amount"`
	BurnAmount uint64                  `json:"burn_amount"`
}

type withdrawRequest struct {
	Wallet      string `json:"wallet"`
	Amount      uint64 `json:"amount"`
	Destination string `json:"destination"`
}

type changeOwnerRequest struct {
	NewOwner string `json:"new_owner"`
}

type availableResponse struct {
	Wallet    string `json:"wallet"`
	Available uint64 `json:"available"`
}

type stateResponse struct {
	Stage              string                 `json:"stage"`
	Owner              string                 `json:"owner,omitempty"`
	MigrationPerformed bool                   `json:"migration_performed"`
	LastBurnYear       int64                  `json:"last_burn_year,omitempty"`
	LastBurnMonth      uint8                  `json:"last_burn_month,omitempty"`
	StartTimestamp     int64                  `json:"start_timestamp,omitempty"`
	Wallets            map[string]*walletView `json:"wallets,omitempty"`
}

type walletView struct {
	Account        string `json:"account"`
	InitialBalance uint64 `json:"initial_balance"`
	Withdrawn      uint64 `json:"withdrawn"`
}

func stageName(stage int) string {
	switch stage {
	case services.StageInitialized:
		return "initialized"
	case services.StageMigrated:
		return "migrated"
	default:
		return "uninitialized"
	}
}

func caller(r *http.Request) string {
	return r.Header.Get(callerHeader)
}

// writeError maps domain errors onto HTTP statuses: authorization failures are
// 403, lifecycle and validation rejections are 409, malformed input is 400.
func (ac *ApiController) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrUnauthorized):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, models.ErrAlreadyInitialized),
		errors.Is(err, models.ErrNotInitialized),
		errors.Is(err, models.ErrMigrationAlreadyPerformed),
		errors.Is(err, models.ErrNotMigrated),
		errors.Is(err, models.ErrDuplicatedWalletName),
		errors.Is(err, models.ErrMismatchedAccountInfo),
		errors.Is(err, models.ErrPooledBalanceNotZero),
		errors.Is(err, models.ErrWalletBalanceZero),
		errors.Is(err, models.ErrTooLateToBurn),
		errors.Is(err, models.ErrAlreadyBurned),
		errors.Is(err, models.ErrNotEnoughTokens):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrUnknownWallet),
		errors.Is(err, models.ErrInvalidTimestamp),
		errors.Is(err, models.ErrEndBeforeStart),
		errors.Is(err, models.ErrAmountOverflow):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		ac.logger.Errorf(providers.TypeApp, "Internal error: %s", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (ac *ApiController) writeJSON(w http.ResponseWriter, status int, result any) {
	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

// committed drops every cached view and refreshes the lifecycle gauge after an
// accepted mutation.
func (ac *ApiController) committed() {
	ac.cache.Purge()
	ac.metrics.SetLifecycleStage(ac.service.LifecycleStage())
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func (ac *ApiController) Initialize(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Initialize(caller(r)); err != nil {
		ac.writeError(w, err)
		return
	}
	ac.committed()
	w.WriteHeader(http.StatusCreated)
}

func (ac *ApiController) Migrate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload migrateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.service.MigrateBalances(caller(r), payload.Entries, payload.MintAmount, payload.BurnAmount); err != nil {
		ac.writeError(w, err)
		return
	}
	ac.committed()
	w.WriteHeader(http.StatusOK)
}

func (ac *ApiController) Burn(w http.ResponseWriter, r *http.Request) {
	if err := ac.service.Burn(); err != nil {
		ac.writeError(w, err)
		return
	}
	ac.metrics.IncBurns()
	ac.committed()
	w.WriteHeader(http.StatusOK)
}

func (ac *ApiController) Withdraw(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload withdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	wallet, err := models.ParseWallet(payload.Wallet)
	if err != nil {
		ac.writeError(w, err)
		return
	}
	if err := ac.service.Withdraw(caller(r), wallet, payload.Amount, payload.Destination); err != nil {
		ac.writeError(w, err)
		return
	}
	ac.metrics.IncWithdrawals(payload.Wallet)
	ac.metrics.ObserveWithdrawnAmount(payload.Wallet, payload.Amount)
	ac.committed()
	w.WriteHeader(http.StatusOK)
}

func (ac *ApiController) ChangeOwner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload changeOwnerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := ac.service.ChangeOwner(caller(r), payload.NewOwner); err != nil {
		ac.writeError(w, err)
		return
	}
	ac.committed()
	w.WriteHeader(http.StatusOK)
}

func (ac *ApiController) GetAvailable(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("wallet")
	wallet, err := models.ParseWallet(name)
	if err != nil {
		ac.writeError(w, err)
		return
	}

	ac.serveFromCacheOrCompute(w, "available:"+name, func() (any, error) {
		available, err := ac.service.AvailableToWithdraw(wallet)
		if err != nil {
			return nil, err
		}
		return availableResponse{Wallet: name, Available: available}, nil
	})
}

func (ac *ApiController) GetState(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, "state", func() (any, error) {
		snapshot := ac.service.GetSnapshot()
		resp := stateResponse{Stage: stageName(ac.service.LifecycleStage())}
		if snapshot.Contract != nil {
			resp.Owner = snapshot.Contract.Owner
			resp.MigrationPerformed = snapshot.Contract.MigrationPerformed
			resp.LastBurnYear = snapshot.Contract.LastBurnYear
			resp.LastBurnMonth = snapshot.Contract.LastBurnMonth
		}
		if snapshot.Vesting != nil {
			resp.StartTimestamp = snapshot.Vesting.StartTimestamp
			resp.Wallets = make(map[string]*walletView, len(snapshot.Vesting.Wallets))
			for wallet, ws := range snapshot.Vesting.Wallets {
				resp.Wallets[wallet.String()] = &walletView{
					Account:        ws.Account,
					InitialBalance: ws.InitialBalance,
					Withdrawn:      ws.Withdrawn,
				}
			}
		}
		return resp, nil
	})
}
