package models

var OrderTypeLabels = map[OrderType]string{
	OrderTypeDineIn:   "داخل المقهى",
	OrderTypePickup:   "استلام",
	OrderTypeDelivery: "توصيل",
}

var OrderStatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "⏳ قيد الانتظار",
	OrderStatusConfirmed: "✅ مؤكد",
	OrderStatusPreparing: "👨‍🍳 قيد التحضير",
	OrderStatusReady:     "🎉 جاهز",
	OrderStatusDelivered: "🚚 تم التوصيل",
	OrderStatusCancelled: "❌ ملغي",
}

var ApplicationStatusLabels = map[ApplicationStatus]string{
	ApplicationStatusNew:         "🆕 جديد",
	ApplicationStatusReviewing:   "👀 قيد المراجعة",
	ApplicationStatusInterviewed: "🗣️ تمت المقابلة",
	ApplicationStatusAccepted:    "✅ مقبول",
	ApplicationStatusRejected:    "❌ مرفوض",
}

// Label returns the localized label for t, or the raw value when unmapped.
func (t OrderType) Label() string {
	if l, ok := OrderTypeLabels[t]; ok {
		return l
	}
	return string(t)
}

func (s OrderStatus) Label() string {
	if l, ok := OrderStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s ApplicationStatus) Label() string {
	if l, ok := ApplicationStatusLabels[s]; ok {
		return l
	}
	return string(s)
}
