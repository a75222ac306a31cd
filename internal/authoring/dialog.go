package authoring

import (
	"context"
	"strings"

	"github.com/AnshRaj112/reflect-backend/internal/fetch"
	"github.com/AnshRaj112/reflect-backend/internal/models"
	"github.com/AnshRaj112/reflect-backend/internal/validation"
)

// CollectionDialog collects a collection name and runs the creation call.
// It reports its outcome to the caller and never navigates or notifies.
type CollectionDialog struct {
	create *fetch.Invoker[models.CollectionInput, models.Collection]
	open   bool
	errs   validation.Errors
}

// NewCollectionDialog returns a closed dialog that creates collections with create.
func NewCollectionDialog(create fetch.Func[models.CollectionInput, models.Collection]) *CollectionDialog {
	return &CollectionDialog{create: fetch.New(create)}
}

func (d *CollectionDialog) Open() {
	d.open = true
	d.errs = nil
}

func (d *CollectionDialog) Close() {
	d.open = false
	d.errs = nil
}

func (d *CollectionDialog) IsOpen() bool { return d.open }

// Loading is true while the creation call runs; controls are disabled meanwhile.
func (d *CollectionDialog) Loading() bool { return d.create.Loading() }

// FieldErrors returns the inline errors of the last Submit.
func (d *CollectionDialog) FieldErrors() validation.Errors { return d.errs }

// Submit validates name and creates the collection. A validation failure is
// returned as validation.Errors without any remote call.
func (d *CollectionDialog) Submit(ctx context.Context, name string) (models.Collection, error) {
	if errs := validation.ValidateCollectionName(name); errs != nil {
		d.errs = errs
		return models.Collection{}, errs
	}
	d.errs = nil
	return d.create.Run(ctx, models.CollectionInput{Name: strings.TrimSpace(name)})
}
