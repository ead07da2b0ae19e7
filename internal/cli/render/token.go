package render

import (
	"fmt"
	"io"
	"math/big"

	"github.com/fatih/color"
	"github.com/trebuchet-org/tokendeploy/internal/domain/models"
)

// TokenRenderer renders token reads and transactions
type TokenRenderer struct {
	out  io.Writer
	json bool
}

// NewTokenRenderer creates a new token renderer
func NewTokenRenderer(out io.Writer, json bool) *TokenRenderer {
	return &TokenRenderer{out: out, json: json}
}

// RenderInfo renders token metadata
func (r *TokenRenderer) RenderInfo(info *models.TokenInfo) error {
	if r.json {
		return writeJSON(r.out, struct {
			Address     string `json:"address"`
			Name        string `json:"name"`
			Symbol      string `json:"symbol"`
			Decimals    uint8  `json:"decimals"`
			TotalSupply string `json:"totalSupply"`
		}{info.Address.Hex(), info.Name, info.Symbol, info.Decimals, bigString(info.TotalSupply)})
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "%s (%s)\n", info.Name, info.Symbol)
	fmt.Fprintf(r.out, "  Address: %s\n", info.Address.Hex())
	fmt.Fprintf(r.out, "  Decimals: %d\n", info.Decimals)
	fmt.Fprintf(r.out, "  Total Supply: %s\n", FormatBigInt(info.TotalSupply))
	return nil
}

// RenderAmount renders a balance or allowance
func (r *TokenRenderer) RenderAmount(label string, amount *big.Int) error {
	if r.json {
		return writeJSON(r.out, map[string]string{label: bigString(amount)})
	}
	fmt.Fprintf(r.out, "%s: %s\n", Title(label), FormatBigInt(amount))
	return nil
}

// RenderTx renders a mined token transaction
func (r *TokenRenderer) RenderTx(result *models.TxResult) error {
	if r.json {
		return writeJSON(r.out, result)
	}
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s confirmed in block %s", result.Method, FormatNumber(result.BlockNumber))))
	fmt.Fprintf(r.out, "  Transaction: %s\n", result.Hash.Hex())
	fmt.Fprintf(r.out, "  Gas Used: %s\n", FormatNumber(result.GasUsed))
	return nil
}

func bigString(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}
