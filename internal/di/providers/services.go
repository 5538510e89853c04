package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/luxlistapp/luxlist-server/internal/export"
	"github.com/luxlistapp/luxlist-server/internal/logger"
	"github.com/luxlistapp/luxlist-server/internal/service"
)

// ProvideFormatter provides the export document formatter.
func ProvideFormatter(i do.Injector) (*export.Formatter, error) {
	return export.NewFormatter()
}

// ProvideInventoryService provides the inventory service, restored from the
// stored snapshot.
func ProvideInventoryService(i do.Injector) (*service.InventoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	formatter := do.MustInvoke[*export.Formatter](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInventoryService(context.Background(), storeHandle.Store, formatter, log.Logger)
}
