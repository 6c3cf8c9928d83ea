package chat

import "github.com/mo-sami19/zynk/models"

// Canned widget copy, used when the upstream engine is unreachable so the
// conversation stays usable offline.

func greeting(lang string) string {
	if lang == models.LangAR {
		return "👋 أهلاً! أنا مساعد زينك الذكي. كيف يمكنني مساعدتك؟"
	}
	return "👋 Hello! I'm Zynk AI Assistant. How can I help you today?"
}

func offlineSuggestions(lang string) []string {
	if lang == models.LangAR {
		return []string{"ما هي خدماتكم؟", "أريد تطوير موقع", "أحتاج تسويق رقمي"}
	}
	return []string{"What services do you offer?", "I need a website", "Tell me about SEO"}
}

func sendError(lang string) string {
	if lang == models.LangAR {
		return "عذراً، حدث خطأ. يرجى المحاولة مرة أخرى."
	}
	return "Sorry, an error occurred. Please try again."
}

func ratingError(lang string) string {
	if lang == models.LangAR {
		return "عذراً، لم نستطع إرسال التقييم الآن. حاول مرة أخرى."
	}
	return "Sorry, we could not submit the rating right now. Please try again."
}
