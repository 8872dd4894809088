package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	departmentModel "reporthub_backend/internals/features/catalog/departments/model"
	productModel "reporthub_backend/internals/features/catalog/product_types/model"
	productService "reporthub_backend/internals/features/catalog/product_types/service"
	categoryModel "reporthub_backend/internals/features/finance/campaign_categories/model"
	categoryService "reporthub_backend/internals/features/finance/campaign_categories/service"
	churchModel "reporthub_backend/internals/features/organization/churches/model"
	"reporthub_backend/internals/features/uploads/model"
	helper "reporthub_backend/internals/helpers"
	helperAuth "reporthub_backend/internals/helpers/auth"
	"reporthub_backend/internals/helpers/fiscal"
)

var errRowSave = errors.New("could not save row, see server log")

type Options struct {
	UploadType        string
	FileName          string
	OrderPeriod       string
	UploadedBy        *uuid.UUID
	Scope             helperAuth.ZoneScope
	DefaultDepartment string
}

type Outcome struct {
	Summary
	UploadID                  uuid.UUID `json:"uploadId"`
	UploadType                string    `json:"uploadType"`
	CreatedProductTypes       []string  `json:"createdProductTypes"`
	CreatedCampaignCategories []string  `json:"createdCampaignCategories"`
}

type churchRef struct {
	ID     uuid.UUID `gorm:"column:church_id"`
	Name   string    `gorm:"column:church_name"`
	ZoneID uuid.UUID `gorm:"column:zone_id"`
}

// importer holds per-upload lookups. A cached nil means "looked up, not found".
type importer struct {
	ctx      context.Context
	db       *gorm.DB
	opts     Options
	uploadID uuid.UUID
	period   fiscal.Period

	churches   map[string]*churchRef
	products   map[string]*productModel.ProductTypeModel
	categories map[string]*categoryModel.CampaignCategoryModel
	orderDept  *departmentModel.DepartmentModel

	createdProducts   []string
	createdCategories []string
}

// Run imports every row of table and records an UploadHistory entry.
// Row problems land in the summary; only infrastructure failures return an error.
func Run(ctx context.Context, db *gorm.DB, table *Table, opts Options) (Outcome, error) {
	imp := &importer{
		ctx:        ctx,
		db:         db.WithContext(ctx),
		opts:       opts,
		uploadID:   uuid.New(),
		churches:   map[string]*churchRef{},
		products:   map[string]*productModel.ProductTypeModel{},
		categories: map[string]*categoryModel.CampaignCategoryModel{},
	}
	if imp.opts.DefaultDepartment == "" {
		imp.opts.DefaultDepartment = "Orders"
	}

	var (
		results   []RowResult
		headerErr error
	)
	switch opts.UploadType {
	case model.UploadTypeTransactions:
		results, headerErr = imp.importTransactions(table)
	case model.UploadTypeOrders:
		p, err := fiscal.ParsePeriod(opts.OrderPeriod)
		if err != nil {
			return Outcome{}, err
		}
		imp.period = p
		results, headerErr = imp.importOrders(table)
	case model.UploadTypeChurches:
		results, headerErr = imp.importChurches(table)
	default:
		return Outcome{}, fmt.Errorf("unknown upload type %q", opts.UploadType)
	}

	summary := Summarize(results, len(table.Rows))
	if headerErr != nil {
		summary.Errors = append([]string{headerErr.Error()}, summary.Errors...)
	}

	out := Outcome{
		Summary:                   summary,
		UploadID:                  imp.uploadID,
		UploadType:                opts.UploadType,
		CreatedProductTypes:       nonNil(imp.createdProducts),
		CreatedCampaignCategories: nonNil(imp.createdCategories),
	}
	if err := imp.saveHistory(out); err != nil {
		return out, err
	}
	log.Printf("[UPLOAD] %s %q status=%s processed=%d/%d errors=%d",
		opts.UploadType, opts.FileName, summary.Status, summary.RecordsProcessed, summary.TotalRows, len(summary.Errors))
	return out, nil
}

func (imp *importer) saveHistory(out Outcome) error {
	h := model.UploadHistoryModel{
		UploadID:               imp.uploadID,
		UploadType:             imp.opts.UploadType,
		UploadFileName:         imp.opts.FileName,
		UploadStatus:           out.Status,
		UploadRecordsProcessed: out.RecordsProcessed,
		UploadTotalRows:        out.TotalRows,
		UploadErrorLog:         strings.Join(out.Errors, "\n"),
		UploadMeta: datatypes.JSONMap{
			"errors":                    out.Errors,
			"createdProductTypes":       out.CreatedProductTypes,
			"createdCampaignCategories": out.CreatedCampaignCategories,
		},
		UploadUploadedBy: imp.opts.UploadedBy,
	}
	if imp.opts.UploadType == model.UploadTypeOrders {
		p := imp.opts.OrderPeriod
		h.UploadOrderPeriod = &p
	}
	return imp.db.Create(&h).Error
}

/* =========================
   Lookups (memoised per upload)
========================= */

func cacheKey(name string) string {
	return strings.ToLower(helper.CleanName(name))
}

func (imp *importer) church(name string) (*churchRef, error) {
	key := cacheKey(name)
	if ref, seen := imp.churches[key]; seen {
		return ref, nil
	}
	var rows []churchRef
	err := imp.db.Model(&churchModel.ChurchModel{}).
		Select("churches.church_id, churches.church_name, g.group_zone_id AS zone_id").
		Joins(`JOIN "groups" g ON g.group_id = churches.church_group_id`).
		Where("LOWER(churches.church_name) = LOWER(?)", helper.CleanName(name)).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	var ref *churchRef
	if len(rows) > 0 {
		ref = &rows[0]
	}
	imp.churches[key] = ref
	return ref, nil
}

// inScope reports a zone-admin upload touching a church outside their zone.
func (imp *importer) inScope(ref *churchRef) error {
	if imp.opts.Scope.Restricted() && !imp.opts.Scope.Allows(ref.ZoneID) {
		return fmt.Errorf("church %q is outside your zone", ref.Name)
	}
	return nil
}

func (imp *importer) product(name string) (*productModel.ProductTypeModel, error) {
	key := cacheKey(name)
	if pt, seen := imp.products[key]; seen {
		return pt, nil
	}
	pt, err := productService.FindByName(imp.ctx, imp.db, name)
	if err != nil {
		return nil, err
	}
	imp.products[key] = pt
	return pt, nil
}

// orderProduct resolves an order column to a product, creating it (price 0)
// under the default order department the first time it is seen.
func (imp *importer) orderProduct(column string) (*productModel.ProductTypeModel, error) {
	pt, err := imp.product(column)
	if err != nil || pt != nil {
		return pt, err
	}
	dept, err := imp.orderDepartment()
	if err != nil {
		return nil, err
	}
	pt, err = productService.CreateAuto(imp.ctx, imp.db, column, dept.DepartmentID)
	if err != nil {
		return nil, err
	}
	imp.products[cacheKey(column)] = pt
	imp.createdProducts = append(imp.createdProducts, pt.ProductTypeName)
	log.Printf("[UPLOAD] product type auto-created: %s", pt.ProductTypeName)
	return pt, nil
}

func (imp *importer) orderDepartment() (*departmentModel.DepartmentModel, error) {
	if imp.orderDept != nil {
		return imp.orderDept, nil
	}
	dept, err := productService.FindOrCreateDepartment(imp.ctx, imp.db, imp.opts.DefaultDepartment)
	if err != nil {
		return nil, err
	}
	imp.orderDept = dept
	return dept, nil
}

// category attaches an existing category by name; allowCreate adds a new one
// for free-text types that recur often enough.
func (imp *importer) category(name string, allowCreate bool) (*categoryModel.CampaignCategoryModel, error) {
	key := cacheKey(name)
	if cat, seen := imp.categories[key]; seen && (cat != nil || !allowCreate) {
		return cat, nil
	}
	if !allowCreate {
		cat, err := categoryService.FindByName(imp.ctx, imp.db, name)
		if err != nil {
			return nil, err
		}
		imp.categories[key] = cat
		return cat, nil
	}
	cat, created, err := categoryService.FindOrCreate(imp.ctx, imp.db, name)
	if err != nil {
		return nil, err
	}
	if created {
		imp.createdCategories = append(imp.createdCategories, cat.CampaignCategoryName)
		log.Printf("[UPLOAD] campaign category auto-created: %s", cat.CampaignCategoryName)
	}
	imp.categories[key] = cat
	return cat, nil
}

// saveRow commits one row's writes. DB failures are logged and reported generically.
func (imp *importer) saveRow(row Row, fn func(tx *gorm.DB) error) RowResult {
	if err := imp.db.Transaction(fn); err != nil {
		log.Printf("[UPLOAD] row %d save failed: %v", row.Num, err)
		return fail(row.Num, errRowSave)
	}
	return ok(row.Num)
}

func missingColumns(required map[string]int) error {
	var missing []string
	for name, idx := range required {
		if idx < 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("Missing required column(s): %s", strings.Join(missing, ", "))
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
