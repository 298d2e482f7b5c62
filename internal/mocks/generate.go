package mocks

//go:generate mockery --name BucketStore --srcpkg github.com/aevon-lab/login-usage/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name SourceLog --srcpkg github.com/aevon-lab/login-usage/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
//go:generate mockery --name CheckpointStore --srcpkg github.com/aevon-lab/login-usage/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
