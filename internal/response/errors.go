package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Payload ───────────────────────────────────────────────────────
	ErrMissingFields  ErrCode = "MISSING_FIELDS"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Students ──────────────────────────────────────────────────────
	ErrStudentIDInvalid     ErrCode = "STUDENT_ID_INVALID"
	ErrControlNumberInvalid ErrCode = "CONTROL_NUMBER_INVALID"
	ErrEmailInvalid         ErrCode = "EMAIL_INVALID"
	ErrAgeOutOfRange        ErrCode = "AGE_OUT_OF_RANGE"
	ErrStudentSemesterRange ErrCode = "STUDENT_SEMESTER_OUT_OF_RANGE"
	ErrStudentExists        ErrCode = "STUDENT_EXISTS"
	ErrControlNumberTaken   ErrCode = "CONTROL_NUMBER_TAKEN"
	ErrStudentNotFound      ErrCode = "STUDENT_NOT_FOUND"

	// ─── Subjects ──────────────────────────────────────────────────────
	ErrSubjectIDInvalid     ErrCode = "SUBJECT_ID_INVALID"
	ErrSubjectNameInvalid   ErrCode = "SUBJECT_NAME_INVALID"
	ErrSubjectSemesterRange ErrCode = "SUBJECT_SEMESTER_OUT_OF_RANGE"
	ErrEnrolledCountInvalid ErrCode = "ENROLLED_COUNT_INVALID"
	ErrSubjectExists        ErrCode = "SUBJECT_EXISTS"
	ErrSubjectNameTaken     ErrCode = "SUBJECT_NAME_TAKEN"
	ErrSubjectNotFound      ErrCode = "SUBJECT_NOT_FOUND"

	// ─── Grades ────────────────────────────────────────────────────────
	ErrGradeInvalid  ErrCode = "GRADE_INVALID"
	ErrGradeNotFound ErrCode = "GRADE_NOT_FOUND"

	// ─── Transport ─────────────────────────────────────────────────────
	ErrRouteNotFound     ErrCode = "ROUTE_NOT_FOUND"
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the user-facing message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Payload ───────────────────────────────────────────────────────
	case ErrMissingFields:
		return "Faltan campos obligatorios"
	case ErrInvalidPayload:
		return "Cuerpo de la petición inválido"

	// ─── Students ──────────────────────────────────────────────────────
	case ErrStudentIDInvalid:
		return "El ID debe ser alfanumérico"
	case ErrControlNumberInvalid:
		return "El número de control debe tener exactamente 8 dígitos numéricos"
	case ErrEmailInvalid:
		return "Formato de email inválido"
	case ErrAgeOutOfRange:
		return "Edad fuera de rango permitido (17-30)"
	case ErrStudentSemesterRange:
		return "Semestre fuera de rango permitido (1-12)"
	case ErrStudentExists:
		return "Ya existe un alumno con este ID"
	case ErrControlNumberTaken:
		return "El número de control ya está registrado"
	case ErrStudentNotFound:
		return "Alumno no encontrado"

	// ─── Subjects ──────────────────────────────────────────────────────
	case ErrSubjectIDInvalid:
		return "ID de materia inválido. Formato: ABC-123"
	case ErrSubjectNameInvalid:
		return "Nombre debe tener entre 5 y 100 caracteres"
	case ErrSubjectSemesterRange:
		return "Semestre fuera de rango permitido (1-9)"
	case ErrEnrolledCountInvalid:
		return "Número de alumnos debe ser 0 o mayor"
	case ErrSubjectExists:
		return "Ya existe una materia con este ID"
	case ErrSubjectNameTaken:
		return "Ya existe una materia con este nombre"
	case ErrSubjectNotFound:
		return "Materia no encontrada"

	// ─── Grades ────────────────────────────────────────────────────────
	case ErrGradeInvalid:
		return "Calificación inválida (0-100)"
	case ErrGradeNotFound:
		return "Calificación no encontrada para esta materia"

	// ─── Transport ─────────────────────────────────────────────────────
	case ErrRouteNotFound:
		return "Ruta no encontrada"
	case ErrRateLimitExceeded:
		return "Demasiadas peticiones. Intenta de nuevo más tarde"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Error interno del servidor"
	default:
		return "Error inesperado"
	}
}
