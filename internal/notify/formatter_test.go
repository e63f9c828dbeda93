package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cafe/internal/models"
)

var tripoli = time.FixedZone("EET", 2*60*60)

func testFormatter() Formatter {
	return Formatter{ShopName: "Refresh Cafe", Currency: "د.ل", Location: tripoli}
}

func deliveryOrder() models.Order {
	return models.Order{
		Items: []models.OrderItem{
			{Name: "Latte", Price: 20, Quantity: 2},
			{Name: "Croissant", Price: 7.5, Quantity: 1},
		},
		Subtotal:    47.5,
		DeliveryFee: 5,
		Total:       52.5,
		Type:        models.OrderTypeDelivery,
		Customer:    models.OrderCustomer{Name: "Ali", Phone: "0912345678", Address: "Tripoli"},
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Date(2026, 10, 16, 12, 30, 0, 0, time.UTC),
	}
}

func TestFormatOrder(t *testing.T) {
	text := testFormatter().Format(OrderRecord{Order: deliveryOrder()}, "65f0c0ffee0123456789abcd")

	assert.True(t, strings.HasPrefix(text, "🔔 *طلب جديد - Refresh Cafe*\n\n"))
	assert.Contains(t, text, "📝 رقم الطلب: `6789abcd`\n")
	assert.Contains(t, text, "📊 الحالة: ⏳ قيد الانتظار\n")
	assert.Contains(t, text, "📦 نوع الطلب: توصيل\n")
	assert.Contains(t, text, "⏰ الوقت: 16 أكتوبر 2026، 02:30 م\n")
	assert.Contains(t, text, "العنوان: Tripoli\n")
	assert.Contains(t, text, "• Latte × 2 = 40.00 د.ل\n")
	assert.Contains(t, text, "• Croissant × 1 = 7.50 د.ل\n")
	assert.Contains(t, text, "🚚 رسوم التوصيل: 5.00 د.ل\n")
	assert.True(t, strings.HasSuffix(text, "💰 *الإجمالي: 52.50 د.ل*"))
	assert.NotContains(t, text, "ملاحظات")
}

func TestFormatOrderOmitsMissingOptionalFields(t *testing.T) {
	o := models.Order{
		Items:       []models.OrderItem{{Name: "Espresso", Price: 10, Quantity: 1}},
		Subtotal:    10,
		Total:       10,
		Type:        models.OrderTypeDineIn,
		TableNumber: "5",
		Status:      models.OrderStatusPending,
		CreatedAt:   time.Date(2026, 1, 2, 22, 5, 0, 0, time.UTC),
	}
	text := testFormatter().Format(OrderRecord{Order: o}, "abc")

	assert.Contains(t, text, "🪑 رقم الطاولة: 5\n")
	assert.Contains(t, text, "📦 نوع الطلب: داخل المقهى\n")
	assert.Contains(t, text, "⏰ الوقت: 3 يناير 2026، 12:05 ص\n")
	for _, label := range []string{"الاسم:", "الهاتف:", "العنوان:", "ملاحظات:", "رسوم التوصيل"} {
		assert.NotContains(t, text, label)
	}
	assert.NotContains(t, text, ": \n", "empty optional values must not leave blank fields")
}

func TestFormatIsDeterministic(t *testing.T) {
	f := testFormatter()
	records := []Record{
		OrderRecord{Order: deliveryOrder()},
		ReviewRecord{Comment: models.Comment{UserName: "Sara", Rating: 5, Text: "ممتاز"}},
		ContactRecord{Message: models.ContactMessage{Name: "Omar", Message: "hello"}},
		ApplicationRecord{Application: models.JobApplication{JobTitle: "Barista", ApplicantName: "Huda", Status: models.ApplicationStatusNew}},
		StatusUpdateRecord{Order: deliveryOrder(), NewStatus: models.OrderStatusReady},
	}
	for _, rec := range records {
		assert.Equal(t, f.Format(rec, "0123456789"), f.Format(rec, "0123456789"), string(rec.Kind()))
	}
}

func TestShortIDKeepsShortIDs(t *testing.T) {
	assert.Equal(t, "", ShortID(""))
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "12345678", ShortID("12345678"))
	assert.Equal(t, "23456789", ShortID("123456789"))

	text := testFormatter().Format(ContactRecord{Message: models.ContactMessage{Name: "x", Message: "y"}}, "ab1")
	assert.Contains(t, text, "`ab1`")
}

func TestFormatReview(t *testing.T) {
	c := models.Comment{UserName: "Sara", Rating: 4, Text: "قهوة *رائعة*", CreatedAt: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	text := testFormatter().Format(ReviewRecord{Comment: c}, "65f0c0ffee0123456789abcd")

	assert.Contains(t, text, "التقييم: ⭐⭐⭐⭐ (4/5)\n")
	assert.Contains(t, text, "👤 الاسم: Sara\n")
	assert.Contains(t, text, `قهوة \*رائعة\*`)
	assert.NotContains(t, text, "📧")
	assert.True(t, strings.HasSuffix(text, "⏳ قيد المراجعة"))

	c.Approved = true
	c.Rating = 9
	text = testFormatter().Format(ReviewRecord{Comment: c}, "x")
	assert.Contains(t, text, "⭐⭐⭐⭐⭐ (9/5)")
	assert.True(t, strings.HasSuffix(text, "✅ معتمد"))
}

func TestFormatContact(t *testing.T) {
	m := models.ContactMessage{Name: "Omar", Phone: "0911111111", Message: "هل لديكم حلويات؟"}
	text := testFormatter().Format(ContactRecord{Message: m}, "id")

	assert.Contains(t, text, "💬 *رسالة تواصل جديدة - Refresh Cafe*")
	assert.Contains(t, text, "📱 الهاتف: 0911111111\n")
	assert.NotContains(t, text, "📧")
	assert.NotContains(t, text, "⏰", "zero timestamps are omitted")
	assert.True(t, strings.HasSuffix(text, "🆕 جديدة"))
}

func TestFormatApplication(t *testing.T) {
	a := models.JobApplication{
		JobTitle:       "Barista",
		ApplicantName:  "Huda",
		ApplicantPhone: "0922222222",
		CVURL:          "https://i.ibb.co/cv.png",
		Message:        "I love coffee",
		Status:         models.ApplicationStatus("on-hold"),
	}
	text := testFormatter().Format(ApplicationRecord{Application: a}, "id")

	assert.Contains(t, text, "💼 الوظيفة: Barista\n")
	assert.Contains(t, text, "📄 السيرة الذاتية: [عرض الملف](https://i.ibb.co/cv.png)\n")
	assert.True(t, strings.HasSuffix(text, "📊 الحالة: on-hold"), "unknown enum values print raw")
}

func TestFormatStatusUpdate(t *testing.T) {
	o := deliveryOrder()
	o.UpdatedAt = o.CreatedAt.Add(time.Hour)
	text := testFormatter().Format(StatusUpdateRecord{Order: o, NewStatus: models.OrderStatusReady}, "65f0c0ffee0123456789abcd")

	assert.Contains(t, text, "تحديث حالة الطلب")
	assert.Contains(t, text, "📊 الحالة الجديدة: 🎉 جاهز\n")
	assert.Contains(t, text, "⏰ وقت التحديث: 16 أكتوبر 2026، 03:30 م\n")
	assert.True(t, strings.HasSuffix(text, "💰 الإجمالي: 52.50 د.ل"))
}

func TestWelcome(t *testing.T) {
	f := testFormatter()
	assert.True(t, strings.HasPrefix(f.Welcome("Sara"), "👋 أهلاً Sara!"))
	assert.True(t, strings.HasPrefix(f.Welcome(""), "👋 أهلاً!"))
	assert.Contains(t, f.Welcome("x"), "*Refresh Cafe*")
}

func TestShopNameInsideBoldDropsReservedCharacters(t *testing.T) {
	f := testFormatter()
	f.ShopName = "Bean_&_Leaf*"

	text := f.Format(ContactRecord{Message: models.ContactMessage{Name: "Omar", Message: "hi"}}, "id")
	title := strings.SplitN(text, "\n", 2)[0]
	assert.True(t, strings.HasSuffix(title, " - Bean&Leaf*"), title)
	assert.NotContains(t, title, `\`)

	assert.Contains(t, f.Welcome("x"), "*Bean&Leaf*")
}

func TestCVLinkEncodesClosingParenthesis(t *testing.T) {
	a := models.JobApplication{ApplicantName: "Huda", CVURL: "https://files.example/cv(final).pdf"}
	text := testFormatter().Format(ApplicationRecord{Application: a}, "id")

	assert.Contains(t, text, "[عرض الملف](https://files.example/cv(final%29.pdf)\n")
}
