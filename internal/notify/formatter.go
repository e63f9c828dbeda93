package notify

import (
	"fmt"
	"strings"
	"time"

	"cafe/internal/models"
)

// Formatter renders records as Telegram Markdown text. It is pure: the same
// record and id always produce the same text.
type Formatter struct {
	ShopName string
	Currency string
	Location *time.Location
}

var arabicMonths = [...]string{
	"يناير", "فبراير", "مارس", "أبريل", "مايو", "يونيو",
	"يوليو", "أغسطس", "سبتمبر", "أكتوبر", "نوفمبر", "ديسمبر",
}

var markdownEscaper = strings.NewReplacer(`_`, `\_`, `*`, `\*`, "`", "\\`", `[`, `\[`)

// Escapes are not honoured inside an entity, so text placed in *bold* loses
// the reserved characters instead.
var entityStripper = strings.NewReplacer(`_`, "", `*`, "", "`", "", `[`, "")

// A ")" would end the link target early.
var linkEscaper = strings.NewReplacer(`)`, "%29")

// ShortID returns the last 8 characters of id, or all of it when shorter.
func ShortID(id string) string {
	r := []rune(id)
	if len(r) <= 8 {
		return id
	}
	return string(r[len(r)-8:])
}

func (f Formatter) Format(rec Record, id string) string {
	switch r := rec.(type) {
	case OrderRecord:
		return f.order(r.Order, id)
	case ReviewRecord:
		return f.review(r.Comment, id)
	case ContactRecord:
		return f.contact(r.Message, id)
	case ApplicationRecord:
		return f.application(r.Application, id)
	case StatusUpdateRecord:
		return f.statusUpdate(r, id)
	}
	return ""
}

// Welcome is the reply to /start.
func (f Formatter) Welcome(name string) string {
	var b strings.Builder
	if name = strings.TrimSpace(name); name != "" {
		fmt.Fprintf(&b, "👋 أهلاً %s!\n\n", esc(name))
	} else {
		b.WriteString("👋 أهلاً!\n\n")
	}
	fmt.Fprintf(&b, "✅ تم تفعيل إشعارات *%s* في هذه المحادثة.\n", entityStripper.Replace(f.ShopName))
	b.WriteString("ستصلك هنا الطلبات والتقييمات والرسائل وطلبات التوظيف الجديدة.")
	return b.String()
}

func (f Formatter) order(o models.Order, id string) string {
	var b strings.Builder
	f.title(&b, "🔔", "طلب جديد")
	fmt.Fprintf(&b, "📝 رقم الطلب: `%s`\n", ShortID(id))
	fmt.Fprintf(&b, "📊 الحالة: %s\n", o.Status.Label())
	fmt.Fprintf(&b, "📦 نوع الطلب: %s\n", o.Type.Label())
	f.timeLine(&b, "⏰ الوقت", o.CreatedAt)
	b.WriteString("\n👤 *بيانات العميل:*\n")
	optional(&b, "الاسم", o.Customer.Name)
	optional(&b, "الهاتف", o.Customer.Phone)
	optional(&b, "🪑 رقم الطاولة", o.TableNumber)
	optional(&b, "العنوان", o.Customer.Address)
	optional(&b, "ملاحظات", o.Customer.Notes)

	b.WriteString("\n🛒 *المنتجات:*\n")
	for _, item := range o.Items {
		fmt.Fprintf(&b, "• %s × %d = %s\n", esc(item.Name), item.Quantity, f.money(item.LineTotal()))
	}

	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, "\n🧾 المجموع الفرعي: %s\n", f.money(o.Subtotal))
		fmt.Fprintf(&b, "🚚 رسوم التوصيل: %s\n", f.money(o.DeliveryFee))
	}
	fmt.Fprintf(&b, "\n💰 *الإجمالي: %s*", f.money(o.Total))
	return b.String()
}

func (f Formatter) review(c models.Comment, id string) string {
	rating := c.Rating
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}

	var b strings.Builder
	f.title(&b, "⭐", "تقييم جديد")
	fmt.Fprintf(&b, "📝 رقم التقييم: `%s`\n", ShortID(id))
	fmt.Fprintf(&b, "التقييم: %s (%d/5)\n", strings.Repeat("⭐", rating), c.Rating)
	optional(&b, "👤 الاسم", c.UserName)
	optional(&b, "📧 البريد", c.UserEmail)
	f.timeLine(&b, "⏰ الوقت", c.CreatedAt)
	fmt.Fprintf(&b, "\n💬 *التعليق:*\n%s\n\n", esc(c.Text))
	if c.Approved {
		b.WriteString("📊 الحالة: ✅ معتمد")
	} else {
		b.WriteString("📊 الحالة: ⏳ قيد المراجعة")
	}
	return b.String()
}

func (f Formatter) contact(m models.ContactMessage, id string) string {
	var b strings.Builder
	f.title(&b, "💬", "رسالة تواصل جديدة")
	fmt.Fprintf(&b, "📝 رقم الرسالة: `%s`\n", ShortID(id))
	optional(&b, "👤 الاسم", m.Name)
	optional(&b, "📧 البريد", m.Email)
	optional(&b, "📱 الهاتف", m.Phone)
	f.timeLine(&b, "⏰ الوقت", m.CreatedAt)
	fmt.Fprintf(&b, "\n💬 *الرسالة:*\n%s\n\n", esc(m.Message))
	if m.Read {
		b.WriteString("📊 الحالة: ✅ مقروءة")
	} else {
		b.WriteString("📊 الحالة: 🆕 جديدة")
	}
	return b.String()
}

func (f Formatter) application(a models.JobApplication, id string) string {
	var b strings.Builder
	f.title(&b, "💼", "طلب توظيف جديد")
	fmt.Fprintf(&b, "📝 رقم الطلب: `%s`\n", ShortID(id))
	optional(&b, "💼 الوظيفة", a.JobTitle)
	f.timeLine(&b, "⏰ الوقت", a.CreatedAt)
	b.WriteString("\n👤 *بيانات المتقدم:*\n")
	optional(&b, "الاسم", a.ApplicantName)
	optional(&b, "📱 الهاتف", a.ApplicantPhone)
	optional(&b, "📧 البريد", a.ApplicantEmail)
	if a.CVURL != "" {
		fmt.Fprintf(&b, "📄 السيرة الذاتية: [عرض الملف](%s)\n", linkEscaper.Replace(a.CVURL))
	}
	fmt.Fprintf(&b, "\n💬 *رسالة المتقدم:*\n%s\n\n", esc(a.Message))
	fmt.Fprintf(&b, "📊 الحالة: %s", a.Status.Label())
	return b.String()
}

func (f Formatter) statusUpdate(r StatusUpdateRecord, id string) string {
	var b strings.Builder
	f.title(&b, "🔔", "تحديث حالة الطلب")
	fmt.Fprintf(&b, "📝 رقم الطلب: `%s`\n", ShortID(id))
	fmt.Fprintf(&b, "📊 الحالة الجديدة: %s\n", r.NewStatus.Label())
	f.timeLine(&b, "⏰ وقت التحديث", r.Order.UpdatedAt)
	b.WriteString("\n")
	optional(&b, "👤 العميل", r.Order.Customer.Name)
	optional(&b, "📱 الهاتف", r.Order.Customer.Phone)
	optional(&b, "🪑 رقم الطاولة", r.Order.TableNumber)
	fmt.Fprintf(&b, "💰 الإجمالي: %s", f.money(r.Order.Total))
	return b.String()
}

func (f Formatter) title(b *strings.Builder, emoji, kind string) {
	if f.ShopName == "" {
		fmt.Fprintf(b, "%s *%s*\n\n", emoji, kind)
		return
	}
	fmt.Fprintf(b, "%s *%s - %s*\n\n", emoji, kind, entityStripper.Replace(f.ShopName))
}

func (f Formatter) timeLine(b *strings.Builder, label string, t time.Time) {
	if t.IsZero() {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, f.timestamp(t))
}

// timestamp renders t as "16 أكتوبر 2026، 02:30 م" in the configured zone.
func (f Formatter) timestamp(t time.Time) string {
	loc := f.Location
	if loc == nil {
		loc = time.UTC
	}
	t = t.In(loc)

	hour, suffix := t.Hour(), "ص"
	if hour >= 12 {
		suffix = "م"
	}
	if hour = hour % 12; hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d %s %d، %02d:%02d %s",
		t.Day(), arabicMonths[t.Month()-1], t.Year(), hour, t.Minute(), suffix)
}

func (f Formatter) money(v float64) string {
	if f.Currency == "" {
		return fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f %s", v, f.Currency)
}

func optional(b *strings.Builder, label, value string) {
	if value = strings.TrimSpace(value); value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, esc(value))
}

func esc(s string) string {
	return markdownEscaper.Replace(s)
}
