package catalogxml

import (
	"context"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/internal/domain/entity"
)

func sampleProducts() []*entity.Product {
	ts := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return []*entity.Product{
		{ID: "b", Name: "Válvula", CategoryName: "Industrial", CurrencyCode: "USD", Price: decimal.RequireFromString("12.5"), MinOrderQty: 10, SellerID: "s1", UpdatedAt: ts},
		{ID: "a", Name: "Bomba & motor", CategoryName: "Industrial", CurrencyCode: "EUR", Price: decimal.NewFromInt(900), MinOrderQty: 1, Unit: "piece", SellerID: "s2", UpdatedAt: ts},
	}
}

func TestBuildCatalogFeed_Determinista(t *testing.T) {
	b := NewBuilder()
	ps := sampleProducts()
	first, err := b.BuildCatalogFeed(context.Background(), "Mercado B2B", ps)
	require.NoError(t, err)

	// Mismo conjunto en otro orden → mismo documento y ETag.
	second, err := b.BuildCatalogFeed(context.Background(), "Mercado B2B", []*entity.Product{ps[1], ps[0]})
	require.NoError(t, err)
	assert.Equal(t, first.ETag, second.ETag)
	assert.Equal(t, string(first.XML), string(second.XML))

	ps[0].Price = decimal.NewFromInt(13)
	third, err := b.BuildCatalogFeed(context.Background(), "Mercado B2B", ps)
	require.NoError(t, err)
	assert.NotEqual(t, first.ETag, third.ETag)
}

func TestBuildCatalogFeed_Contenido(t *testing.T) {
	feed, err := NewBuilder().BuildCatalogFeed(context.Background(), "Mercado B2B", sampleProducts())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(feed.XML))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "catalog", root.Tag)
	assert.Equal(t, "2", root.SelectAttrValue("count", ""))

	products := root.SelectElements("product")
	require.Len(t, products, 2)
	assert.Equal(t, "a", products[0].SelectAttrValue("id", ""), "ordenado por nombre")
	assert.Equal(t, "Bomba & motor", products[0].SelectElement("name").Text())
	assert.Equal(t, "900.00", products[0].SelectElement("price").Text())
	assert.Equal(t, "EUR", products[0].SelectElement("price").SelectAttrValue("currency", ""))
	assert.Nil(t, products[1].SelectElement("unit"))
}

func TestETag_IgnoraFormato(t *testing.T) {
	a, err := ETag([]byte(`<catalog supplier="x" count="0"></catalog>`))
	require.NoError(t, err)
	b, err := ETag([]byte(`<catalog count="0"  supplier="x"/>`))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 66)
}
