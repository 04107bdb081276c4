package csv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vsinha/etd/pkg/domain/entities"
	"github.com/vsinha/etd/pkg/logger"
)

func writeScenario(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func scenarioFiles() map[string]string {
	return map[string]string{
		StockFile: "\ufeffDSM Code,Greige ETA,Greige Incoming\n" +
			"1001,2025-03-01,500\n" +
			"1001,2025-03-11,\"1,800\"\n" +
			"1002,2025-03-05,0\n",
		PurchaseOrderFile: "PO,DSM Code,CHD,Quantity request,Forecasted,CPT Name,COLOR\n" +
			"PO-1,1001,2025-05-01,500,Yes,Twill,NAVY\n" +
			"PO-2,1001,2025-05-08,1200,no,Twill,NAVY\n",
		LotStatusFile: "DSM Code,COLOR,STATUS,DUE DATE\n" +
			"1001,NAVY,EXPIRED,2025-06-01\n",
		CapacityFile: "CAPACITY DATE,CAPACITY REMAIN\n" +
			"2025-03-02,1000\n",
	}
}

func TestLoader_LoadScenario(t *testing.T) {
	dir := writeScenario(t, scenarioFiles())

	input, err := NewLoader(logger.Nop()).LoadScenario(dir)
	require.NoError(t, err)

	require.Len(t, input.StockRows, 3)
	assert.Equal(t, "1800", input.StockRows[1].Quantity.Decimal.String())
	require.Len(t, input.PurchaseOrders, 2)
	assert.True(t, input.PurchaseOrders[0].IsForecasted)
	assert.Equal(t, entities.OrderAttributes{CPTName: "Twill", RawColor: "NAVY"}, input.PurchaseOrders[0].Attributes)
	require.Len(t, input.LotStatuses, 1)
	require.Len(t, input.CapacityDays, 1)
	assert.Empty(t, input.Excluded)
}

func TestLoader_LoadScenario_MissingFile(t *testing.T) {
	files := scenarioFiles()
	delete(files, CapacityFile)
	dir := writeScenario(t, files)

	_, err := NewLoader(logger.Nop()).LoadScenario(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.ErrorIs(t, err, entities.ErrMissingSheet, "a missing scenario file is a structural failure")
	assert.Contains(t, err.Error(), CapacityFile)
}

func TestLoader_LoadScenario_MissingColumn(t *testing.T) {
	files := scenarioFiles()
	files[PurchaseOrderFile] = "PO,DSM Code,Quantity request,Forecasted\nPO-1,1001,500,no\n"
	dir := writeScenario(t, files)

	_, err := NewLoader(logger.Nop()).LoadScenario(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrMissingColumn)
	assert.Contains(t, err.Error(), `"CHD"`)
}
