package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/domain"
	"github.com/IamHamadMalik/Shopify-Product-Bulk-Update-App/internal/shopify"
)

// inventoryAdjustReason is the fixed reason code sent with every
// inventory adjustment batch.
const inventoryAdjustReason = "correction"

// Field-group labels recorded in patch outcomes.
const (
	GroupInventory = "inventory"
	GroupProduct   = "product"
	GroupVariant   = "variant"
)

// PatchOutcome records one attempted mutation. A failure here never
// rolls back or blocks the other calls in the same submission.
type PatchOutcome struct {
	EntityID   string `json:"entityId"`
	FieldGroup string `json:"fieldGroup"`
	Error      string `json:"error,omitempty"`
}

// PatchReport is what a bulk-edit submission produced: the distinct
// product ids a patch was attempted for, in first-touch order, plus
// every per-call outcome.
type PatchReport struct {
	EditedProductIDs []string       `json:"editedProductIds"`
	Outcomes         []PatchOutcome `json:"outcomes"`
}

// Failed returns the outcomes that carry an error.
func (r *PatchReport) Failed() []PatchOutcome {
	var failed []PatchOutcome
	for _, o := range r.Outcomes {
		if o.Error != "" {
			failed = append(failed, o)
		}
	}
	return failed
}

// entityUpdate is one form group: every submitted value sharing an
// index suffix ("3" for product-level, "3_1" for a variant).
type entityUpdate map[string]string

// Reconciler diffs submitted edits against their round-tripped original
// values and dispatches the minimal mutation set.
type Reconciler struct {
	client GraphQLClient
	logger *zap.Logger
}

// NewReconciler creates a new bulk patch reconciler
func NewReconciler(client GraphQLClient, logger *zap.Logger) *Reconciler {
	return &Reconciler{client: client, logger: logger}
}

// GroupFormUpdates splits keys of the form <field>_<pi>[_<vi>] on the
// first underscore and groups values by the index suffix. The returned
// order is product index first, product-level group before its variant
// groups.
func GroupFormUpdates(form url.Values) ([]string, map[string]entityUpdate) {
	groups := make(map[string]entityUpdate)
	for key := range form {
		parts := strings.SplitN(key, "_", 2)
		if len(parts) != 2 {
			continue
		}
		field, idx := parts[0], parts[1]
		if groups[idx] == nil {
			groups[idx] = make(entityUpdate)
		}
		groups[idx][field] = form.Get(key)
	}

	indexes := make([]string, 0, len(groups))
	for idx := range groups {
		indexes = append(indexes, idx)
	}
	sort.Slice(indexes, func(i, j int) bool {
		return compareIndexes(indexes[i], indexes[j])
	})
	return indexes, groups
}

// compareIndexes orders "0" < "0_0" < "0_1" < "1" < "2" numerically.
func compareIndexes(a, b string) bool {
	as := strings.Split(a, "_")
	bs := strings.Split(b, "_")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr != nil || berr != nil {
			if as[i] != bs[i] {
				return as[i] < bs[i]
			}
			continue
		}
		if ai != bi {
			return ai < bi
		}
	}
	return len(as) < len(bs)
}

// changedValue returns the submitted value and true when field is
// present, non-empty, and differs from its round-tripped original. A
// missing original counts as changed.
func changedValue(u entityUpdate, field string) (string, bool) {
	v, ok := u[field]
	if !ok || v == "" {
		return "", false
	}
	orig, hasOrig := u["original"+upperFirst(field)]
	if hasOrig && orig == v {
		return "", false
	}
	return v, true
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// formatPrice normalizes a submitted price to exactly two decimals.
func formatPrice(s string) (string, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", fmt.Errorf("invalid price %q: %w", s, err)
	}
	return strconv.FormatFloat(f, 'f', 2, 64), nil
}

// buildProductInput assembles the product-level patch. The second
// return is false when nothing beyond the identifier would be sent.
func buildProductInput(u entityUpdate) (*shopify.ProductInput, bool) {
	productID := u["productId"]
	if productID == "" {
		return nil, false
	}
	input := &shopify.ProductInput{ID: productID}
	changed := false

	if v, ok := changedValue(u, "title"); ok {
		input.Title = &v
		changed = true
	}
	if v, ok := changedValue(u, "descriptionHtml"); ok {
		input.DescriptionHTML = &v
		changed = true
	}
	if v, ok := changedValue(u, "vendor"); ok {
		input.Vendor = &v
		changed = true
	}
	if v, ok := changedValue(u, "productType"); ok {
		input.ProductType = &v
		changed = true
	}
	if v, ok := changedValue(u, "tags"); ok {
		if tags := SplitTags(v); len(tags) > 0 {
			input.Tags = tags
			changed = true
		}
	}

	return input, changed
}

// buildVariantInput assembles the variant price patch, each value
// formatted to two decimals.
func buildVariantInput(u entityUpdate) (*shopify.ProductVariantsBulkInput, bool, error) {
	variantID := u["variantId"]
	if variantID == "" {
		return nil, false, nil
	}
	input := &shopify.ProductVariantsBulkInput{ID: variantID}
	changed := false

	if v, ok := changedValue(u, "price"); ok {
		price, err := formatPrice(v)
		if err != nil {
			return nil, false, err
		}
		input.Price = &price
		changed = true
	}
	if v, ok := changedValue(u, "compareAtPrice"); ok {
		price, err := formatPrice(v)
		if err != nil {
			return nil, false, err
		}
		input.CompareAtPrice = &price
		changed = true
	}

	return input, changed, nil
}

// buildInventoryChange computes the signed delta for one variant group.
// Emitted only when both identifiers are present and the submitted
// quantity differs textually from the round-tripped original.
func buildInventoryChange(u entityUpdate) (*domain.InventoryChange, bool) {
	itemID := u["inventoryItemId"]
	locationID := u["locationId"]
	submitted, hasSubmitted := u["inventoryQuantity"]
	original := u["originalInventoryQuantity"]

	if itemID == "" || locationID == "" || !hasSubmitted || submitted == original {
		return nil, false
	}

	submittedQty, err := strconv.Atoi(strings.TrimSpace(submitted))
	if err != nil {
		return nil, false
	}
	originalQty, err := strconv.Atoi(strings.TrimSpace(original))
	if err != nil {
		return nil, false
	}
	if submittedQty == originalQty {
		return nil, false
	}

	return &domain.InventoryChange{
		InventoryItemID: itemID,
		LocationID:      locationID,
		Delta:           submittedQty - originalQty,
	}, true
}

// ApplyBulkEdit computes and dispatches the minimal mutation set for a
// submission: one inventory adjustment batch first, then per-entity
// product and variant patches. Calls are independent; a failure is
// recorded in the report and the remaining calls still run.
func (r *Reconciler) ApplyBulkEdit(ctx context.Context, form url.Values) (*PatchReport, error) {
	indexes, groups := GroupFormUpdates(form)
	report := &PatchReport{}
	touched := make(map[string]bool)

	touch := func(productID string) {
		if productID == "" || touched[productID] {
			return
		}
		touched[productID] = true
		report.EditedProductIDs = append(report.EditedProductIDs, productID)
	}

	// Inventory first: every delta in the submission goes out as one
	// batched adjustment.
	var changes []shopify.InventoryChangeInput
	for _, idx := range indexes {
		u := groups[idx]
		if ch, ok := buildInventoryChange(u); ok {
			changes = append(changes, shopify.InventoryChangeInput{
				InventoryItemID: ch.InventoryItemID,
				LocationID:      ch.LocationID,
				Delta:           ch.Delta,
			})
			touch(u["productId"])
		}
	}
	if len(changes) > 0 {
		outcome := PatchOutcome{EntityID: "inventory-batch", FieldGroup: GroupInventory}
		if err := r.adjustInventory(ctx, changes); err != nil {
			outcome.Error = err.Error()
			r.logger.Error("Inventory adjustment failed", zap.Error(err), zap.Int("changes", len(changes)))
		}
		report.Outcomes = append(report.Outcomes, outcome)
	}

	for _, idx := range indexes {
		u := groups[idx]

		if input, ok := buildProductInput(u); ok {
			touch(input.ID)
			outcome := PatchOutcome{EntityID: input.ID, FieldGroup: GroupProduct}
			if err := r.updateProduct(ctx, input); err != nil {
				outcome.Error = err.Error()
				r.logger.Error("Product update failed", zap.Error(err), zap.String("product_id", input.ID))
			}
			report.Outcomes = append(report.Outcomes, outcome)
		}

		input, ok, err := buildVariantInput(u)
		if err != nil {
			report.Outcomes = append(report.Outcomes, PatchOutcome{
				EntityID:   u["variantId"],
				FieldGroup: GroupVariant,
				Error:      err.Error(),
			})
			continue
		}
		if ok {
			touch(u["productId"])
			outcome := PatchOutcome{EntityID: input.ID, FieldGroup: GroupVariant}
			if err := r.updateVariant(ctx, u["productId"], input); err != nil {
				outcome.Error = err.Error()
				r.logger.Error("Variant update failed", zap.Error(err), zap.String("variant_id", input.ID))
			}
			report.Outcomes = append(report.Outcomes, outcome)
		}
	}

	return report, nil
}

func (r *Reconciler) adjustInventory(ctx context.Context, changes []shopify.InventoryChangeInput) error {
	input := shopify.InventoryAdjustQuantitiesInput{
		Reason:  inventoryAdjustReason,
		Name:    "available",
		Changes: changes,
	}
	resp, err := r.client.Execute(ctx, shopify.InventoryAdjustQuantitiesMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return err
	}

	var result struct {
		InventoryAdjustQuantities struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"inventoryAdjustQuantities"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse inventory adjustment response: %w", err)
	}
	return userErrorsToError(result.InventoryAdjustQuantities.UserErrors)
}

func (r *Reconciler) updateProduct(ctx context.Context, input *shopify.ProductInput) error {
	resp, err := r.client.Execute(ctx, shopify.ProductUpdateMutation, map[string]interface{}{
		"input": input,
	})
	if err != nil {
		return err
	}

	var result struct {
		ProductUpdate struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse product update response: %w", err)
	}
	return userErrorsToError(result.ProductUpdate.UserErrors)
}

func (r *Reconciler) updateVariant(ctx context.Context, productID string, input *shopify.ProductVariantsBulkInput) error {
	resp, err := r.client.Execute(ctx, shopify.ProductVariantsBulkUpdateMutation, map[string]interface{}{
		"productId": productID,
		"variants":  []*shopify.ProductVariantsBulkInput{input},
	})
	if err != nil {
		return err
	}

	var result struct {
		ProductVariantsBulkUpdate struct {
			UserErrors []shopify.UserError `json:"userErrors"`
		} `json:"productVariantsBulkUpdate"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return fmt.Errorf("failed to parse variant update response: %w", err)
	}
	return userErrorsToError(result.ProductVariantsBulkUpdate.UserErrors)
}

func userErrorsToError(userErrors []shopify.UserError) error {
	if len(userErrors) == 0 {
		return nil
	}
	messages := make([]string, len(userErrors))
	for i, ue := range userErrors {
		messages[i] = ue.Message
	}
	return fmt.Errorf("shopify user errors: %s", strings.Join(messages, "; "))
}
