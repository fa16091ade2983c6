package application

// Bilingual message pairs shared by the approval engine and the rejection
// reason catalog. Formatting verbs are filled with computed values at
// evaluation time; the catalog exposes the raw templates together with
// stable search patterns.
const (
	msgPhoneMissingAr = "رقم الجوال مطلوب"
	msgPhoneMissingEn = "phone number is required"

	msgPhoneInvalidAr = "رقم الجوال غير صالح: %s"
	msgPhoneInvalidEn = "invalid phone number: %s"

	msgBirthDateMissingAr = "تاريخ الميلاد مطلوب"
	msgBirthDateMissingEn = "birth date is required"

	msgBirthDateInvalidAr = "تاريخ الميلاد غير صالح، الصيغة المطلوبة هي YYYY-MM-DD"
	msgBirthDateInvalidEn = "invalid birth date, expected format is YYYY-MM-DD"

	msgAgeBelowMinimumAr = "العمر المحسوب %d سنة أقل من الحد الأدنى %d سنة"
	msgAgeBelowMinimumEn = "computed age %d is below the minimum of %d years"

	msgAgeMismatchAr = "العمر المدخل %s لا يطابق العمر المحسوب من تاريخ الميلاد %d"
	msgAgeMismatchEn = "declared age %s does not match the age computed from birth date %d"

	msgCitizensOnlyAr = "الخدمة متاحة للمواطنين فقط"
	msgCitizensOnlyEn = "this service is available to citizens only"

	msgFinancialsNotNumericAr = "الراتب الشهري والالتزامات الشهرية يجب أن تكون أرقاماً صحيحة"
	msgFinancialsNotNumericEn = "monthly salary and monthly commitments must be numeric"

	msgSalaryNotPositiveAr = "الراتب الشهري يجب أن يكون أكبر من صفر"
	msgSalaryNotPositiveEn = "monthly salary must be greater than zero"

	msgRatioExceededAr = "نسبة الالتزامات %s%% تتجاوز الحد الأقصى المسموح %s%%"
	msgRatioExceededEn = "commitment ratio of %s%% exceeds the allowed ceiling of %s%%"

	msgProcessingErrorAr = "حدث خطأ أثناء معالجة الطلب"
	msgProcessingErrorEn = "an unexpected error occurred while processing the submission"
)

// Stable substrings used to match catalog entries against stored reason
// strings despite interpolated values (ages, percentages).
const (
	patternPhoneInvalidAr = "رقم الجوال غير صالح"
	patternPhoneInvalidEn = "invalid phone number"

	patternAgeBelowMinimumAr = "أقل من الحد الأدنى"
	patternAgeBelowMinimumEn = "below the minimum"

	patternAgeMismatchAr = "لا يطابق العمر المحسوب"
	patternAgeMismatchEn = "does not match the age computed"

	patternRatioExceededAr = "تتجاوز الحد الأقصى المسموح"
	patternRatioExceededEn = "exceeds the allowed ceiling"
)
