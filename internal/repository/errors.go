package repository

import "github.com/Freeeeeet/room_booking/internal/repository/base"

// StorageError - ошибка ввода-вывода хранилища бронирований
type StorageError = base.StorageError
