package backupcontroller

import (
	"io"
	"log"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/tealeg/xlsx"

	"github.com/Mihinr/Gowin-Sports/models"
)

// Spreadsheet schema: one sheet named "Products", one row per product.
// Images are pipe-joined URLs; variants and specs are JSON strings so the
// nested data survives a flat cell.
var backupColumns = []string{
	"id", "name", "slug", "description", "long_description",
	"category", "collection", "type", "price", "discount_percentage",
	"out_of_stock", "installment_months", "enable_mintpay", "enable_koko",
	"specs", "product_images", "variants",
}

var backupColumnWidths = []float64{
	5, 30, 30, 50, 100, 15, 15, 20, 10, 10, 10, 10, 10, 10, 50, 200, 300,
}

// BackupRow is one decoded data row, every cell kept as its string form.
// Type coercion happens in the restore path.
type BackupRow struct {
	ID                 string
	Name               string
	Slug               string
	Description        string
	LongDescription    string
	Category           string
	Collection         string
	Type               string
	Price              string
	DiscountPercentage string
	OutOfStock         string
	InstallmentMonths  string
	EnableMintpay      string
	EnableKoko         string
	Specs              string
	ProductImages      string
	Variants           string

	// Line is the 1-based position among the decoded data rows.
	Line int
}

// variantCell is the JSON shape of a variant inside the "variants" cell.
// grip_size/frame_racket/racket_piece carry the legacy "None" sentinel in
// exported files; internally those fields are nil when absent.
type variantCell struct {
	Color              *string `json:"color"`
	ImageURL           *string `json:"image_url"`
	Stock              int     `json:"stock"`
	Size               *string `json:"size"`
	GripSize           *string `json:"grip_size"`
	DiscountPercentage float64 `json:"discount_percentage"`
	FrameRacket        *string `json:"frame_racket"`
	RacketPiece        *string `json:"racket_piece"`
}

// EncodeBackup renders the catalog as an Excel workbook. Products are
// expected in ascending id order with images ordered is_main first.
func EncodeBackup(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	for i, w := range backupColumnWidths {
		// Width hints only; an error here does not affect the data.
		_ = sheet.SetColWidth(i, i, w)
	}

	header := sheet.AddRow()
	for _, col := range backupColumns {
		header.AddCell().SetValue(col)
	}

	for _, p := range products {
		specsJSON, err := json.Marshal(ParseSpecs(p.Specs))
		if err != nil {
			return nil, err
		}

		urls := make([]string, 0, len(p.Images))
		for _, img := range p.Images {
			urls = append(urls, img.ImageURL)
		}

		cells := make([]variantCell, 0, len(p.Variants))
		for _, v := range p.Variants {
			cells = append(cells, toVariantCell(v))
		}
		variantsJSON, err := json.Marshal(cells)
		if err != nil {
			return nil, err
		}

		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetValue(p.LongDescription)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(deref(p.Collection))
		row.AddCell().SetValue(deref(p.Type))
		row.AddCell().SetValue(p.Price)
		row.AddCell().SetValue(p.DiscountPercentage)
		row.AddCell().SetValue(yesNo(p.OutOfStock))
		row.AddCell().SetValue(p.InstallmentMonths)
		row.AddCell().SetValue(yesNo(p.EnableMintpay))
		row.AddCell().SetValue(yesNo(p.EnableKoko))
		row.AddCell().SetValue(string(specsJSON))
		row.AddCell().SetValue(strings.Join(urls, " | "))
		row.AddCell().SetValue(string(variantsJSON))
	}

	return file, nil
}

// DecodeBackup parses an uploaded workbook into rows keyed by header name.
// It returns *FormatError for anything that is not a populated spreadsheet.
func DecodeBackup(r io.ReaderAt, size int64) ([]BackupRow, error) {
	xlFile, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, &FormatError{Reason: "Invalid Excel file format. Please ensure the file is a valid .xlsx or .xls file."}
	}
	if len(xlFile.Sheets) == 0 {
		return nil, &FormatError{Reason: "Excel file has no sheets"}
	}

	sheet := xlFile.Sheets[0]
	if sheet.MaxRow < 2 {
		return nil, &FormatError{Reason: "Excel file is empty or has no data rows"}
	}

	// Header row maps column names to indexes so column order in the file
	// does not matter.
	headers := map[string]int{}
	for i, cell := range sheet.Rows[0].Cells {
		name := strings.ToLower(strings.TrimSpace(cell.String()))
		if name != "" {
			headers[name] = i
		}
	}

	var rows []BackupRow
	for i := 1; i < sheet.MaxRow; i++ {
		row := sheet.Rows[i]
		if row == nil || len(row.Cells) == 0 {
			continue
		}

		get := func(col string) string {
			idx, ok := headers[col]
			if !ok || idx >= len(row.Cells) {
				return ""
			}
			return strings.TrimSpace(row.Cells[idx].String())
		}

		br := BackupRow{
			ID:                 get("id"),
			Name:               get("name"),
			Slug:               get("slug"),
			Description:        get("description"),
			LongDescription:    get("long_description"),
			Category:           get("category"),
			Collection:         get("collection"),
			Type:               get("type"),
			Price:              get("price"),
			DiscountPercentage: get("discount_percentage"),
			OutOfStock:         get("out_of_stock"),
			InstallmentMonths:  get("installment_months"),
			EnableMintpay:      get("enable_mintpay"),
			EnableKoko:         get("enable_koko"),
			Specs:              get("specs"),
			ProductImages:      get("product_images"),
			Variants:           get("variants"),
		}
		if isBlank(br) {
			continue
		}
		br.Line = len(rows) + 1
		rows = append(rows, br)
	}

	if len(rows) == 0 {
		return nil, &FormatError{Reason: "Excel file is empty or has no data rows"}
	}
	return rows, nil
}

// ParseSpecs decodes the specs JSON blob, defaulting to an empty mapping
// when the cell is blank or malformed.
func ParseSpecs(raw string) map[string]string {
	specs := map[string]string{}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return specs
	}
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		log.Printf("⚠️ Could not parse specs %q: %v", raw, err)
		return map[string]string{}
	}
	return specs
}

// parseVariants decodes the variants JSON cell. Malformed JSON is logged
// and skipped; it never fails the row.
func parseVariants(raw string, line int) []variantCell {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var cells []variantCell
	if err := json.Unmarshal([]byte(raw), &cells); err != nil {
		log.Printf("⚠️ Could not parse variants for row %d: %v", line, err)
		return nil
	}
	return cells
}

// splitImageURLs accepts both pipe- and comma-separated URL lists.
func splitImageURLs(raw string) []string {
	var urls []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == ','
	}) {
		if url := strings.TrimSpace(part); url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

func toVariantCell(v models.Variant) variantCell {
	return variantCell{
		Color:              v.Color,
		ImageURL:           v.ImageURL,
		Stock:              v.Stock,
		Size:               v.Size,
		GripSize:           noneOr(v.GripSize),
		DiscountPercentage: v.DiscountPercentage,
		FrameRacket:        noneOr(v.FrameRacket),
		RacketPiece:        noneOr(v.RacketPiece),
	}
}

func (vc variantCell) toModel(productID uint) models.Variant {
	return models.Variant{
		ProductID:          productID,
		Color:              noneAsNil(vc.Color),
		ImageURL:           noneAsNil(vc.ImageURL),
		Stock:              vc.Stock,
		Size:               noneAsNil(vc.Size),
		GripSize:           noneAsNil(vc.GripSize),
		DiscountPercentage: vc.DiscountPercentage,
		FrameRacket:        noneAsNil(vc.FrameRacket),
		RacketPiece:        noneAsNil(vc.RacketPiece),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// parseYesNo accepts the forms older exports may carry: "Yes", "true", 1.
func parseYesNo(s string) bool {
	switch strings.TrimSpace(s) {
	case "Yes", "yes", "YES", "true", "TRUE", "True", "1":
		return true
	}
	return false
}

func parseFloatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	// Numeric cells can surface as "3.0".
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func noneOr(s *string) *string {
	if s == nil {
		none := "None"
		return &none
	}
	return s
}

func noneAsNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" || v == "None" {
		return nil
	}
	return &v
}

func isBlank(br BackupRow) bool {
	return br.ID == "" && br.Name == "" && br.Slug == "" && br.Category == "" &&
		br.Price == "" && br.ProductImages == "" && br.Variants == ""
}
