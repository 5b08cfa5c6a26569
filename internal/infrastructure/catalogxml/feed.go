// Package catalogxml construye el feed XML del catálogo público con etree.
// El ETag es el SHA-256 de la forma canónica (C14N) del documento, así dos
// renderizados equivalentes producen la misma huella.
package catalogxml

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/mercado-b2b-api/internal/application/ports"
	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

// Namespace del documento.
const Namespace = "urn:mercado-b2b:catalog:1"

// Builder implementa ports.CatalogFeedBuilder.
type Builder struct{}

var _ ports.CatalogFeedBuilder = (*Builder)(nil)

// NewBuilder construye el builder.
func NewBuilder() *Builder { return &Builder{} }

// BuildCatalogFeed serializa los productos ordenados por nombre e ID. No incluye la hora
// de generación: el mismo conjunto de productos produce siempre el mismo documento.
func (b *Builder) BuildCatalogFeed(ctx context.Context, supplier string, products []*entity.Product) (*ports.CatalogFeed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sorted := make([]*entity.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("catalog")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("supplier", supplier)
	root.CreateAttr("count", strconv.Itoa(len(sorted)))

	for _, p := range sorted {
		el := root.CreateElement("product")
		el.CreateAttr("id", p.ID)
		el.CreateElement("name").SetText(p.Name)
		if p.Description != "" {
			el.CreateElement("description").SetText(p.Description)
		}
		cat := el.CreateElement("category")
		cat.CreateAttr("id", p.CategoryID)
		cat.SetText(p.CategoryName)
		price := el.CreateElement("price")
		price.CreateAttr("currency", p.CurrencyCode)
		price.SetText(p.Price.StringFixed(2))
		el.CreateElement("minOrderQty").SetText(strconv.Itoa(p.MinOrderQty))
		if p.Unit != "" {
			el.CreateElement("unit").SetText(p.Unit)
		}
		el.CreateElement("seller").CreateAttr("id", p.SellerID)
		el.CreateElement("updated").SetText(p.UpdatedAt.UTC().Format(time.RFC3339))
	}
	doc.Indent(2)

	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("catalogxml: serializar: %w", err)
	}
	etag, err := ETag(out)
	if err != nil {
		return nil, err
	}
	return &ports.CatalogFeed{XML: out, ETag: etag}, nil
}

// ETag huella SHA-256 (hex, entre comillas) de la forma canónica del XML.
func ETag(data []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		return "", fmt.Errorf("catalogxml: canonicalizar: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return `"` + hex.EncodeToString(sum[:]) + `"`, nil
}
