package i18n_test

import (
	"context"
	"testing"
	"time"

	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/i18n"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestLocalizer_Match(t *testing.T) {
	l := i18n.MustNewLocalizer(i18n.Indonesian, i18n.Builtin())

	assert.Equal(t, i18n.English, l.Match("en-US,en;q=0.9"))
	assert.Equal(t, i18n.Indonesian, l.Match("id"))
	assert.Equal(t, i18n.Indonesian, l.Match("", "fr-FR"))
	assert.Equal(t, i18n.English, l.Match("fr", "en"))
	assert.Equal(t, i18n.Indonesian, l.Match())
}

func TestLocalizer_SupportedOrderIsStable(t *testing.T) {
	msgs := i18n.Messages{
		i18n.Indonesian:              {"field.phone": "Telepon"},
		i18n.English:                 {"field.phone": "Phone"},
		language.German:              {"field.phone": "Telefon"},
		language.French:              {"field.phone": "Téléphone"},
		language.Japanese:            {"field.phone": "電話"},
		language.Portuguese:          {"field.phone": "Telefone"},
		language.BrazilianPortuguese: {"field.phone": "Telefone"},
	}
	want := []language.Tag{
		i18n.Indonesian,
		language.German,
		language.English,
		language.French,
		language.Japanese,
		language.Portuguese,
		language.BrazilianPortuguese,
	}

	for i := 0; i < 20; i++ {
		l := i18n.MustNewLocalizer(i18n.Indonesian, msgs)
		assert.Equal(t, want, l.Supported())
		assert.Equal(t, language.Portuguese, l.Match("pt"))
	}
}

func TestLocalizer_Translate(t *testing.T) {
	l := i18n.MustNewLocalizer(i18n.Indonesian, i18n.Builtin())

	ctx := context.Background()
	assert.Equal(t, "Nomor telepon sudah terdaftar", l.T(ctx, "attendance.phone_taken"))

	ctx = contextutil.WithLanguage(ctx, i18n.English)
	assert.Equal(t, "Phone number is already registered", l.T(ctx, "attendance.phone_taken"))
	assert.Equal(t, "Class is required", l.T(ctx, "validation.required", "Class"))
}

func TestLocalizer_Has(t *testing.T) {
	l := i18n.MustNewLocalizer(i18n.Indonesian, i18n.Builtin())

	assert.True(t, l.Has(i18n.English, "field.phone"))
	assert.True(t, l.Has(language.French, "field.phone"))
	assert.False(t, l.Has(i18n.English, "field.unknown"))
}

func TestLocalizer_Swappable(t *testing.T) {
	custom, err := i18n.NewLocalizer(i18n.English, i18n.Messages{
		i18n.English: {"attendance.phone_taken": "phone in use"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "phone in use", custom.T(context.Background(), "attendance.phone_taken"))

	_, err = i18n.NewLocalizer(language.German, i18n.Messages{i18n.English: {}})
	assert.Error(t, err)
}

func TestWeekdayShort(t *testing.T) {
	l := i18n.MustNewLocalizer(i18n.Indonesian, i18n.Builtin())

	assert.Equal(t, "Sen", i18n.WeekdayShort(l.Printer(i18n.Indonesian), time.Monday))
	assert.Equal(t, "Sun", i18n.WeekdayShort(l.Printer(i18n.English), time.Sunday))
}
