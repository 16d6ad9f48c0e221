package i18n

// Builtin returns the bundled Indonesian and English catalogs. Values are
// x/text/message format strings.
func Builtin() Messages {
	return Messages{
		Indonesian: {
			"common.invalid_input":     "Input tidak valid",
			"common.not_found":         "Data tidak ditemukan",
			"common.internal":          "Terjadi kesalahan pada server",
			"common.unauthorized":      "Autentikasi diperlukan",
			"common.too_many_requests": "Terlalu banyak permintaan, coba lagi nanti",

			"attendance.not_found":           "Data absensi tidak ditemukan",
			"attendance.phone_taken":         "Nomor telepon sudah terdaftar",
			"attendance.social_handle_taken": "Username Instagram sudah terdaftar",
			"attendance.name_school_taken":   "Nama dan sekolah sudah terdaftar hari ini",
			"attendance.invalid_check_type":  "Jenis pengecekan duplikat tidak valid",
			"attendance.deleted":             "Data berhasil dihapus",
			"attendance.cleared":             "Semua data berhasil dihapus",
			"attendance.export_all_branches": "semua",
			"attendance.export_filename":     "absensi-%s-%s.csv",
			"attendance.created":             "Absensi berhasil dicatat",
			"admin.invalid_credentials":      "Username atau password salah",
			"admin.not_found":                "Admin tidak ditemukan",
			"admin.username_taken":           "Username sudah digunakan",
			"admin.login_success":            "Login berhasil",
			"auth.token_missing":             "Token tidak ditemukan",
			"auth.token_invalid":             "Token tidak valid",
			"auth.token_expired":             "Token sudah kedaluwarsa",
			"validation.required":            "%s wajib diisi",
			"validation.min":                 "%s minimal %s karakter",
			"validation.max":                 "%s maksimal %s karakter",
			"validation.invalid":             "%s tidak valid",
			"validation.personname":          "%s hanya boleh berisi huruf dan spasi",
			"validation.idphone":             "Format nomor telepon tidak valid",
			"validation.socialhandle":        "%s hanya boleh berisi huruf, angka, titik, dan garis bawah",
			"field.name":                     "Nama Lengkap",
			"field.class":                    "Kelas",
			"field.phone":                    "Telepon",
			"field.socialHandle":             "Instagram",
			"field.school":                   "Asal Sekolah",
			"field.city":                     "Kota",
			"field.province":                 "Provinsi",
			"field.branch":                   "Cabang",
			"field.username":                 "Username",
			"field.password":                 "Password",
			"export.no":                      "No",
			"export.created_at":              "Waktu Absensi",
			"weekday.short.sun":              "Min",
			"weekday.short.mon":              "Sen",
			"weekday.short.tue":              "Sel",
			"weekday.short.wed":              "Rab",
			"weekday.short.thu":              "Kam",
			"weekday.short.fri":              "Jum",
			"weekday.short.sat":              "Sab",
		},
		English: {
			"common.invalid_input":     "The provided input is invalid",
			"common.not_found":         "Resource not found",
			"common.internal":          "An unexpected error occurred",
			"common.unauthorized":      "Authentication is required",
			"common.too_many_requests": "Too many requests, please try again later",

			"attendance.not_found":           "Attendance record not found",
			"attendance.phone_taken":         "Phone number is already registered",
			"attendance.social_handle_taken": "Instagram username is already registered",
			"attendance.name_school_taken":   "Name and school are already registered today",
			"attendance.invalid_check_type":  "Invalid duplicate check type",
			"attendance.deleted":             "Record deleted successfully",
			"attendance.cleared":             "All data cleared successfully",
			"attendance.export_all_branches": "all",
			"attendance.export_filename":     "attendance-%s-%s.csv",
			"attendance.created":             "Attendance recorded",
			"admin.invalid_credentials":      "Invalid credentials",
			"admin.not_found":                "Admin not found",
			"admin.username_taken":           "Username is already taken",
			"admin.login_success":            "Login successful",
			"auth.token_missing":             "Token not found",
			"auth.token_invalid":             "Invalid token",
			"auth.token_expired":             "Token has expired",
			"validation.required":            "%s is required",
			"validation.min":                 "%s must be at least %s characters",
			"validation.max":                 "%s must be at most %s characters",
			"validation.invalid":             "%s is invalid",
			"validation.personname":          "%s may only contain letters and spaces",
			"validation.idphone":             "Invalid phone number format",
			"validation.socialhandle":        "%s may only contain letters, digits, dots and underscores",
			"field.name":                     "Full Name",
			"field.class":                    "Class",
			"field.phone":                    "Phone",
			"field.socialHandle":             "Instagram",
			"field.school":                   "School",
			"field.city":                     "City",
			"field.province":                 "Province",
			"field.branch":                   "Branch",
			"field.username":                 "Username",
			"field.password":                 "Password",
			"export.no":                      "No",
			"export.created_at":              "Submitted At",
			"weekday.short.sun":              "Sun",
			"weekday.short.mon":              "Mon",
			"weekday.short.tue":              "Tue",
			"weekday.short.wed":              "Wed",
			"weekday.short.thu":              "Thu",
			"weekday.short.fri":              "Fri",
			"weekday.short.sat":              "Sat",
		},
	}
}
