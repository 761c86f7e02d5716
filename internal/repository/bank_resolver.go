package repository

import (
	"context"
	"net/http"
	"strings"

	domrepo "Tickfunds/internal/domain/repository"
	xhttp "Tickfunds/pkg/http"
	applogger "Tickfunds/pkg/logger"
)

// Fallback names used when no lookup service is configured or it fails.
const (
	FallbackBankName   = "HDFC Bank"
	FallbackBranchName = "Mumbai Main Branch"
)

// IFSCResolver looks up bank and branch names from an IFSC directory that
// answers GET {base}/{IFSC} with {"BANK": ..., "BRANCH": ...}.
type IFSCResolver struct {
	client  *xhttp.Client
	baseURL string
	l       *applogger.Logger
}

var _ domrepo.BankResolver = (*IFSCResolver)(nil)

func NewIFSCResolver(client *xhttp.Client, baseURL string, l *applogger.Logger) *IFSCResolver {
	if l == nil {
		l = applogger.NewNop()
	}
	return &IFSCResolver{client: client, baseURL: strings.TrimRight(baseURL, "/"), l: l}
}

type ifscRecord struct {
	Bank   string `json:"BANK"`
	Branch string `json:"BRANCH"`
}

// Resolve never fails the wizard: lookup errors degrade to the fallback names.
func (r *IFSCResolver) Resolve(ctx context.Context, ifsc string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	if r.baseURL == "" || r.client == nil {
		return FallbackBankName, FallbackBranchName, nil
	}
	var rec ifscRecord
	err := r.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: http.MethodGet,
		URL:    r.baseURL + "/" + strings.ToUpper(ifsc),
	}, &rec)
	if err != nil || rec.Bank == "" {
		r.l.Warn("ifsc lookup failed, using fallback",
			applogger.String("ifsc", ifsc),
			applogger.Error(err),
		)
		return FallbackBankName, FallbackBranchName, nil
	}
	branch := rec.Branch
	if branch == "" {
		branch = FallbackBranchName
	}
	return rec.Bank, branch, nil
}
