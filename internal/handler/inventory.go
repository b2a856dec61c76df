package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/csemotors/motors/internal/queue"
	"github.com/csemotors/motors/internal/repository"
	"github.com/csemotors/motors/internal/service/queue_publisher"
	"github.com/csemotors/motors/internal/session"
	"github.com/csemotors/motors/internal/validation"
	"github.com/csemotors/motors/internal/view"
)

// InventoryHandler bundles dependencies for the inventory workflow: browse
// views, the management dashboard and the add/edit/delete flows. Every
// failed submission re-renders the originating form with the submitted
// values echoed back; only successful mutations redirect.
type InventoryHandler struct {
	Classifications *repository.ClassificationRepo
	Inventory       *repository.InventoryRepo
	Flash           *session.Store
}

func NewInventoryHandler(cls *repository.ClassificationRepo, inv *repository.InventoryRepo, flash *session.Store) *InventoryHandler {
	return &InventoryHandler{Classifications: cls, Inventory: inv, Flash: flash}
}

// inventoryForm reads the add/update vehicle fields exactly as submitted.
func inventoryForm(c echo.Context) validation.InventoryForm {
	f := validation.InventoryForm{
		InvID:            c.FormValue("inv_id"),
		VIN:              c.FormValue("inv_vin"),
		Make:             c.FormValue("inv_make"),
		Model:            c.FormValue("inv_model"),
		Year:             c.FormValue("inv_year"),
		Description:      c.FormValue("inv_description"),
		Image:            c.FormValue("inv_image"),
		Thumbnail:        c.FormValue("inv_thumbnail"),
		Price:            c.FormValue("inv_price"),
		Miles:            c.FormValue("inv_miles"),
		Color:            c.FormValue("inv_color"),
		ClassificationID: c.FormValue("classification_id"),
	}
	f.Trim()
	return f
}

// vehicleFromForm converts a validated form into a repository record. The
// optional numeric fields are parsed here; a non-empty value that fails to
// parse is reported as a field error so the form re-renders instead of
// storing garbage.
func vehicleFromForm(f validation.InventoryForm) (*repository.Vehicle, []validation.FieldError) {
	var errs []validation.FieldError
	v := &repository.Vehicle{
		VIN:         f.VIN,
		Make:        f.Make,
		Model:       f.Model,
		Year:        f.Year,
		Description: f.Description,
		Image:       f.Image,
		Thumbnail:   f.Thumbnail,
	}
	v.ClassificationID, _ = strconv.ParseUint(f.ClassificationID, 10, 64)
	if f.Price != "" {
		p, err := strconv.ParseFloat(f.Price, 64)
		if err != nil || p < 0 {
			errs = append(errs, validation.FieldError{Field: "inv_price", Message: "Price must be a number."})
		} else {
			v.Price = p
		}
	}
	if f.Miles != "" {
		m, err := strconv.ParseInt(f.Miles, 10, 64)
		if err != nil || m < 0 {
			errs = append(errs, validation.FieldError{Field: "inv_miles", Message: "Miles must be a number."})
		} else {
			v.Miles = sql.NullInt64{Int64: m, Valid: true}
		}
	}
	if f.Color != "" {
		v.Color = sql.NullString{String: f.Color, Valid: true}
	}
	return v, errs
}

// formFromVehicle converts a stored record back into form values for the
// edit view.
func formFromVehicle(v *repository.Vehicle) validation.InventoryForm {
	f := validation.InventoryForm{
		InvID:            strconv.FormatUint(v.ID, 10),
		VIN:              v.VIN,
		Make:             v.Make,
		Model:            v.Model,
		Year:             v.Year,
		Description:      v.Description,
		Image:            v.Image,
		Thumbnail:        v.Thumbnail,
		Price:            strconv.FormatFloat(v.Price, 'f', -1, 64),
		ClassificationID: strconv.FormatUint(v.ClassificationID, 10),
	}
	if v.Miles.Valid {
		f.Miles = strconv.FormatInt(v.Miles.Int64, 10)
	}
	if v.Color.Valid {
		f.Color = v.Color.String
	}
	return f
}

// renderManagement re-fetches the classification list and renders the
// management dashboard. On a failed submission the sticky values and error
// list ride along; on a plain GET they are empty.
func (h *InventoryHandler) renderManagement(c echo.Context, ctx context.Context, status int,
	clsName string, form validation.InventoryForm, notice string, errs []validation.FieldError) error {
	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	selected, _ := strconv.ParseUint(form.ClassificationID, 10, 64)
	p := view.ManagementPage{
		Page: view.Page{
			Title:  "Vehicle Management",
			Nav:    view.Nav(list),
			Notice: notice,
			Errors: errs,
		},
		Classifications:    view.Nav(list),
		ClassificationName: clsName,
		Form:               form,
		Options:            view.Options(list, selected),
	}
	return c.Render(status, "inventory/management", p)
}

// renderEdit renders the edit view around the given form values. The title
// is rebuilt from the form so a failed update shows what the user attempted
// to save, not the stale stored record.
func (h *InventoryHandler) renderEdit(c echo.Context, ctx context.Context, status int,
	form validation.InventoryForm, errs []validation.FieldError) error {
	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	selected, _ := strconv.ParseUint(form.ClassificationID, 10, 64)
	p := view.EditPage{
		Page: view.Page{
			Title:  fmt.Sprintf("Edit %s %s", form.Make, form.Model),
			Nav:    view.Nav(list),
			Errors: errs,
		},
		Form:    form,
		Options: view.Options(list, selected),
	}
	return c.Render(status, "inventory/edit", p)
}

// Management handles GET /inv/ and renders the dashboard: classification
// list plus the add-classification and add-inventory forms.
func (h *InventoryHandler) Management(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	notice := h.Flash.PopFlash(ctx, session.SessionID(c))
	return h.renderManagement(c, ctx, http.StatusOK, "", validation.InventoryForm{}, notice, nil)
}

// AddClassification handles POST /inv/add-classification. A valid name is
// inserted and the browser redirected to the dashboard with a success
// notice; any failure re-renders the dashboard with the submitted name
// echoed and the reason in the error list.
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	form := validation.ClassificationForm{Name: c.FormValue("classification_name")}
	form.Trim()

	errs := validation.Classification(form)
	status := http.StatusBadRequest
	if len(errs) == 0 {
		id, err := h.Classifications.Create(ctx, form.Name)
		if err == nil {
			_ = queue_publisher.PublishInventoryEvent(ctx, queue.NewClassificationCreated(id, form.Name))
			h.Flash.SetFlash(ctx, session.SessionID(c),
				fmt.Sprintf("The %s classification was successfully added.", form.Name))
			return c.Redirect(http.StatusSeeOther, "/inv/")
		}
		if errors.Is(err, repository.ErrClassificationExists) {
			errs = append(errs, validation.FieldError{Field: "classification_name",
				Message: "That classification name is already in use."})
		} else {
			log.Printf("inventory: add classification failed: %v", err)
			status = http.StatusInternalServerError
			errs = append(errs, validation.FieldError{Field: "classification_name",
				Message: "Sorry, the classification could not be added."})
		}
	}
	return h.renderManagement(c, ctx, status, form.Name, validation.InventoryForm{}, "", errs)
}

// AddInventory handles POST /inv/add-inventory. Defaults for missing
// optional fields are applied at the repository boundary; failures re-render
// the dashboard with the dropdown reselected and every field echoed.
func (h *InventoryHandler) AddInventory(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	form := inventoryForm(c)
	errs := validation.Inventory(form)
	v, parseErrs := vehicleFromForm(form)
	errs = append(errs, parseErrs...)

	if len(errs) > 0 {
		return h.renderManagement(c, ctx, http.StatusBadRequest, "", form, "", errs)
	}
	if err := h.Inventory.Create(ctx, v); err != nil {
		log.Printf("inventory: add vehicle failed: %v", err)
		errs = append(errs, validation.FieldError{Message: "Sorry, the vehicle could not be added."})
		return h.renderManagement(c, ctx, http.StatusInternalServerError, "", form, "", errs)
	}
	_ = queue_publisher.PublishInventoryEvent(ctx, queue.NewVehicleEvent(queue.ActionVehicleCreated, v))
	h.Flash.SetFlash(ctx, session.SessionID(c),
		fmt.Sprintf("The %s %s was successfully added.", v.Make, v.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// BuildByClassification handles GET /inv/type/:classification_id and renders
// the vehicle grid. A classification without vehicles renders the grid view
// with a notice rather than an error.
func (h *InventoryHandler) BuildByClassification(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("classification_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid classification id.")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cls, err := h.Classifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrClassificationNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we could not find that classification.")
		}
		return err
	}
	vehicles, err := h.Inventory.ListByClassification(ctx, id)
	if err != nil {
		return err
	}
	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	p := view.GridPage{
		Page: view.Page{
			Title:  cls.Name + " vehicles",
			Nav:    view.Nav(list),
			Notice: h.Flash.PopFlash(ctx, session.SessionID(c)),
		},
		Grid:       view.Grid(vehicles),
		GridNotice: "Sorry, no matching vehicles could be found.",
	}
	return c.Render(http.StatusOK, "inventory/classification", p)
}

// Detail handles GET /inv/detail/:inv_id. A missing vehicle renders the
// detail view with a not-found notice instead of the generic error page.
func (h *InventoryHandler) Detail(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("inv_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vehicle id.")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	v, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			p := view.DetailPage{
				Page:         view.Page{Title: "Vehicle Not Found", Nav: view.Nav(list)},
				DetailNotice: "Sorry, that vehicle could not be found.",
			}
			return c.Render(http.StatusNotFound, "inventory/detail", p)
		}
		return err
	}
	p := view.DetailPage{
		Page:    view.Page{Title: fmt.Sprintf("%s %s", v.Make, v.Model), Nav: view.Nav(list)},
		Vehicle: view.Detail(v),
	}
	return c.Render(http.StatusOK, "inventory/detail", p)
}

// vehicleJSON is the structured payload returned by GetInventoryJSON. Keys
// mirror the column names so the admin front end can consume rows directly.
type vehicleJSON struct {
	InvID            uint64  `json:"inv_id"`
	InvVIN           string  `json:"inv_vin"`
	InvMake          string  `json:"inv_make"`
	InvModel         string  `json:"inv_model"`
	InvYear          string  `json:"inv_year"`
	InvDescription   string  `json:"inv_description"`
	InvImage         string  `json:"inv_image"`
	InvThumbnail     string  `json:"inv_thumbnail"`
	InvPrice         float64 `json:"inv_price"`
	InvMiles         *int64  `json:"inv_miles"`
	InvColor         *string `json:"inv_color"`
	ClassificationID uint64  `json:"classification_id"`
}

// GetInventoryJSON handles GET /inv/getInventory/:classification_id and
// returns the vehicle list as JSON rather than HTML.
func (h *InventoryHandler) GetInventoryJSON(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("classification_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid classification id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	vehicles, err := h.Inventory.ListByClassification(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
	}
	out := make([]vehicleJSON, 0, len(vehicles))
	for _, v := range vehicles {
		row := vehicleJSON{
			InvID:            v.ID,
			InvVIN:           v.VIN,
			InvMake:          v.Make,
			InvModel:         v.Model,
			InvYear:          v.Year,
			InvDescription:   v.Description,
			InvImage:         v.Image,
			InvThumbnail:     v.Thumbnail,
			InvPrice:         v.Price,
			ClassificationID: v.ClassificationID,
		}
		if v.Miles.Valid {
			m := v.Miles.Int64
			row.InvMiles = &m
		}
		if v.Color.Valid {
			col := v.Color.String
			row.InvColor = &col
		}
		out = append(out, row)
	}
	return c.JSON(http.StatusOK, out)
}

// Edit handles GET /inv/edit/:inventory_id and renders the edit form
// pre-populated from the stored record.
func (h *InventoryHandler) Edit(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("inventory_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vehicle id.")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	v, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we could not find that vehicle.")
		}
		return err
	}
	return h.renderEdit(c, ctx, http.StatusOK, formFromVehicle(v), nil)
}

// Update handles POST /inv/update: a full-field replace keyed by inv_id.
// Failures re-render the edit view with the submitted values, a title built
// from the submitted make/model and the dropdown reselected.
func (h *InventoryHandler) Update(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	form := inventoryForm(c)
	id, err := strconv.ParseUint(form.InvID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vehicle id.")
	}
	errs := validation.Inventory(form)
	v, parseErrs := vehicleFromForm(form)
	errs = append(errs, parseErrs...)
	if len(errs) > 0 {
		return h.renderEdit(c, ctx, http.StatusBadRequest, form, errs)
	}
	v.ID = id
	if err := h.Inventory.Update(ctx, v); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we could not find that vehicle.")
		}
		log.Printf("inventory: update vehicle %d failed: %v", id, err)
		errs = append(errs, validation.FieldError{Message: "Sorry, the update failed."})
		return h.renderEdit(c, ctx, http.StatusInternalServerError, form, errs)
	}
	_ = queue_publisher.PublishInventoryEvent(ctx, queue.NewVehicleEvent(queue.ActionVehicleUpdated, v))
	h.Flash.SetFlash(ctx, session.SessionID(c),
		fmt.Sprintf("The %s %s was successfully updated.", v.Make, v.Model))
	return c.Redirect(http.StatusSeeOther, "/inv/")
}

// DeleteConfirm handles GET /inv/delete/:inv_id and renders the read-only
// confirmation view. A failed delete redirects back here with its reason
// in the flash slot so the user can retry.
func (h *InventoryHandler) DeleteConfirm(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("inv_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vehicle id.")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	v, err := h.Inventory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Sorry, we could not find that vehicle.")
		}
		return err
	}
	list, err := h.Classifications.List(ctx)
	if err != nil {
		return err
	}
	p := view.DeletePage{
		Page: view.Page{
			Title:  fmt.Sprintf("Delete %s %s", v.Make, v.Model),
			Nav:    view.Nav(list),
			Notice: h.Flash.PopFlash(ctx, session.SessionID(c)),
		},
		ID:    v.ID,
		Make:  v.Make,
		Model: v.Model,
		Year:  v.Year,
		Price: view.FormatPrice(v.Price),
	}
	return c.Render(http.StatusOK, "inventory/delete", p)
}

// Delete handles POST /inv/delete. Success redirects to the dashboard with
// a notice; failure flashes the reason and redirects back to the same
// confirmation view rather than a generic error page.
func (h *InventoryHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.FormValue("inv_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid vehicle id.")
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Inventory.Delete(ctx, id); err != nil {
		log.Printf("inventory: delete vehicle %d failed: %v", id, err)
		reason := "Sorry, the delete failed. Please try again."
		if errors.Is(err, repository.ErrVehicleNotFound) {
			reason = "Sorry, that vehicle no longer exists."
		}
		h.Flash.SetFlash(ctx, session.SessionID(c), reason)
		return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/inv/delete/%d", id))
	}
	_ = queue_publisher.PublishInventoryEvent(ctx, queue.NewVehicleEvent(queue.ActionVehicleDeleted, &repository.Vehicle{ID: id}))
	h.Flash.SetFlash(ctx, session.SessionID(c), "The deletion was successful.")
	return c.Redirect(http.StatusSeeOther, "/inv/")
}
